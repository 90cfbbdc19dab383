package config

import (
	"os"

	"github.com/harperclay/ledgerdiff/internal/parse"
	"github.com/spf13/viper"
)

// LoadParseConfig builds the remote statement-parse client from Viper and
// environment variables.
func LoadParseConfig() (*parse.Client, error) {
	baseURL := viper.GetString("parse.base_url")
	if baseURL == "" {
		baseURL = os.Getenv("LEDGERDIFF_PARSE_URL")
	}

	apiKey := viper.GetString("parse.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("LEDGERDIFF_PARSE_API_KEY")
	}

	return parse.NewClient(baseURL, apiKey)
}
