// Package geocode resolves free-text addresses to coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/venue-finder/internal/geo"
)

const (
	defaultBaseURL = "https://api.mapbox.com"
	// DefaultTimeout bounds every geocoding request.
	DefaultTimeout = 10 * time.Second
)

// Resolver resolves an address to a point. ok is false when the address
// could not be resolved for any reason.
type Resolver interface {
	Resolve(ctx context.Context, address string) (p geo.Point, ok bool)
}

// Mapbox is a forward geocoder backed by the Mapbox Geocoding API.
type Mapbox struct {
	httpClient *http.Client
	token      string
	timeout    time.Duration

	// Overridable for testing.
	baseURL string
}

// NewMapbox creates a Mapbox geocoder. A non-positive timeout uses DefaultTimeout.
func NewMapbox(token string, timeout time.Duration) *Mapbox {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mapbox{
		httpClient: &http.Client{},
		token:      token,
		timeout:    timeout,
		baseURL:    defaultBaseURL,
	}
}

// Provider names the geocoding service.
func (m *Mapbox) Provider() string { return "mapbox" }

// geocodingResponse is the response from the mapbox.places endpoint.
type geocodingResponse struct {
	Features []struct {
		Center    []float64 `json:"center"` // [longitude, latitude]
		PlaceName string    `json:"place_name"`
	} `json:"features"`
}

// Resolve geocodes address and returns the first match. Failures are logged
// and reported as ok == false; they never abort the caller.
func (m *Mapbox) Resolve(ctx context.Context, address string) (geo.Point, bool) {
	p, err := m.lookup(ctx, address)
	if err != nil {
		slog.Warn("geocoding failed", "address", address, "error", err)
		return geo.Point{}, false
	}
	slog.Debug("geocoded address", "address", address, "lat", p.Lat, "lng", p.Lng)
	return p, true
}

// lookup performs a single geocoding request bounded by the client timeout.
func (m *Mapbox) lookup(ctx context.Context, address string) (geo.Point, error) {
	if m.token == "" {
		return geo.Point{}, fmt.Errorf("mapbox access token is not configured")
	}
	if address == "" {
		return geo.Point{}, fmt.Errorf("address is required")
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	params := url.Values{
		"access_token": {m.token},
		"limit":        {"1"},
	}
	u := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		m.baseURL, url.PathEscape(address), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("closing geocoding response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var result geocodingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return geo.Point{}, fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Features) == 0 {
		return geo.Point{}, fmt.Errorf("no results for address")
	}
	center := result.Features[0].Center
	if len(center) < 2 {
		return geo.Point{}, fmt.Errorf("malformed center %v", center)
	}

	p := geo.Point{Lat: center[1], Lng: center[0]}
	if !p.Valid() {
		return geo.Point{}, fmt.Errorf("invalid coordinates %v", center)
	}
	return p, nil
}
