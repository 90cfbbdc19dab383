// Package parse uploads statement files to the remote document-parsing
// service and converts the returned records into transactions. It never
// substitutes synthetic data: when the service is unreachable the caller
// gets a typed upstream error and decides what to do.
package parse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/harperclay/ledgerdiff/internal/common"
	"github.com/harperclay/ledgerdiff/internal/model"
	"github.com/google/uuid"
)

// DefaultTimeout bounds one parse round trip; expiry is a failure to be
// surfaced, not retried here.
const DefaultTimeout = 30 * time.Second

// Client talks to the remote statement-parsing service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// record is one normalized line from the parsing service. Amount is signed:
// negative means a withdrawal.
type record struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type parseResponse struct {
	Records []record `json:"records"`
	Pages   int      `json:"pages"`
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a parse-service client.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: parse service URL", common.ErrMissingConfig)
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Parse uploads one statement file and returns its transactions tagged with
// the given name as their statement label source. Records with a missing
// description or amount degrade to safe empty/zero values.
func (c *Client) Parse(ctx context.Context, name string, r io.Reader) ([]model.Transaction, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read statement file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/parse", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, common.ErrRateLimit
	}
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", common.ErrUpstreamUnavailable, resp.StatusCode, payload)
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", common.ErrUpstreamUnavailable, err)
	}

	if len(parsed.Records) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoTransactions, name)
	}

	txns := make([]model.Transaction, 0, len(parsed.Records))
	for _, rec := range parsed.Records {
		direction, amount := model.FromSignedAmount(rec.Amount)
		txn := model.Transaction{
			ID:          uuid.NewString(),
			Date:        rec.Date,
			Description: rec.Description,
			Direction:   direction,
			Amount:      amount,
		}
		txns = append(txns, txn)
	}

	return txns, nil
}
