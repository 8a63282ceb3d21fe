// Package sheets fetches venue rows from a Google Sheets spreadsheet and maps
// them onto venues through a named-column schema.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com"
	// DefaultRange covers the header row plus up to 99 venue rows.
	DefaultRange = "A1:P100"
)

// ErrMissingCredentials is returned when the API key or sheet id is not configured.
var ErrMissingCredentials = errors.New("google sheets API key and sheet id are required")

// Table is the raw content of a sheet range: the header row and the data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Client reads ranges from the Sheets v4 values API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	sheetID    string
	rng        string

	// Overridable for testing.
	baseURL string
}

// NewClient creates a Sheets client. Missing credentials are reported by
// Fetch so callers can fall back instead of failing at startup.
func NewClient(apiKey, sheetID, rng string, timeout time.Duration) *Client {
	if rng == "" {
		rng = DefaultRange
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		sheetID:    sheetID,
		rng:        rng,
		baseURL:    defaultBaseURL,
	}
}

// valuesResponse is the response from the values.get endpoint.
type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// Fetch reads the configured range. The first row is the header.
func (c *Client) Fetch(ctx context.Context) (*Table, error) {
	if c.apiKey == "" || c.sheetID == "" {
		return nil, ErrMissingCredentials
	}

	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?%s",
		c.baseURL,
		url.PathEscape(c.sheetID),
		url.PathEscape(c.rng),
		url.Values{"key": {c.apiKey}}.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = fmt.Errorf("%w (also failed to close body: %v)", err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Values) == 0 {
		return &Table{}, nil
	}
	return &Table{Header: result.Values[0], Rows: result.Values[1:]}, nil
}
