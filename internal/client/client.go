// Package client provides an HTTP client for the venue-finder REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/venue-finder/internal/geo"
	"github.com/evcraddock/venue-finder/internal/venue"
)

// Client is an HTTP client for the venue-finder API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is an error response from the server. It unwraps to
// venue.ErrNotFound or venue.ErrInvalidInput where the status maps to one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return venue.ErrNotFound
	case http.StatusBadRequest:
		return venue.ErrInvalidInput
	}
	return nil
}

// ListOptions controls filtering for ListVenues.
type ListOptions struct {
	Type     string // all, coffee, restaurant, bar (empty = all)
	Search   string
	Location *geo.UserLocation
}

// RefreshResponse is the response from POST /api/venues/refresh.
type RefreshResponse struct {
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	Fallback  bool      `json:"fallback"`
	Reason    string    `json:"reason,omitempty"`
	Refreshed time.Time `json:"refreshed"`
}

func locationParams(params url.Values, loc *geo.UserLocation) {
	if loc == nil {
		return
	}
	params.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	if loc.Accuracy != nil {
		params.Set("accuracy", strconv.FormatFloat(*loc.Accuracy, 'f', -1, 64))
	}
}

func withQuery(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}
	return path + "?" + params.Encode()
}

// ListVenues returns venues filtered and, when a location is given, sorted by distance.
func (c *Client) ListVenues(opts ListOptions) ([]venue.Venue, error) {
	params := url.Values{}
	if opts.Type != "" {
		params.Set("type", opts.Type)
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	locationParams(params, opts.Location)

	var venues []venue.Venue
	if err := c.get(withQuery("/api/venues", params), &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// GetVenue returns a single venue. loc may be nil.
func (c *Client) GetVenue(id int64, loc *geo.UserLocation) (*venue.Venue, error) {
	params := url.Values{}
	locationParams(params, loc)

	var v venue.Venue
	if err := c.get(withQuery(fmt.Sprintf("/api/venues/%d", id), params), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVenuesByType returns venues of exactly one type.
func (c *Client) ListVenuesByType(t string) ([]venue.Venue, error) {
	var venues []venue.Venue
	if err := c.get("/api/venues/type/"+url.PathEscape(t), &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// SearchVenues returns venues matching q in name, description, address, or tags.
func (c *Client) SearchVenues(q string) ([]venue.Venue, error) {
	var venues []venue.Venue
	if err := c.get(withQuery("/api/venues/search", url.Values{"q": {q}}), &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// CreateVenue adds a venue.
func (c *Client) CreateVenue(in venue.Input) (*venue.Venue, error) {
	var v venue.Venue
	if err := c.send(http.MethodPost, "/api/venues", in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVenue applies a partial update to a venue.
func (c *Client) UpdateVenue(id int64, p venue.Patch) (*venue.Venue, error) {
	var v venue.Venue
	if err := c.send(http.MethodPatch, fmt.Sprintf("/api/venues/%d", id), p, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteVenue removes a venue.
func (c *Client) DeleteVenue(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/venues/%d", id))
}

// Refresh reloads venues on the server from upstream.
func (c *Client) Refresh() (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.send(http.MethodPost, "/api/venues/refresh", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(method, path string, body interface{}, result interface{}) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "server error: " + http.StatusText(resp.StatusCode)}
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
