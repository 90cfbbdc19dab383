package cli

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// NewIngestProgress builds a progress bar for statement ingestion. Pass -1
// for total when the transaction count is unknown up front (spinner mode).
func NewIngestProgress(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
