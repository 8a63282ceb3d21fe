package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/venue-finder/internal/geo"
	"github.com/evcraddock/venue-finder/internal/source"
	"github.com/evcraddock/venue-finder/internal/venue"
	"github.com/evcraddock/venue-finder/internal/web"
)

func TestListVenues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/venues" {
			t.Errorf("path = %q, want /api/venues", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("type") != "coffee" || q.Get("search") != "brew" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		if q.Get("lat") != "40.7128" || q.Get("lng") != "-74.006" || q.Get("accuracy") != "12.5" {
			t.Errorf("location query = %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]venue.Venue{{ID: 4, Name: "Morning Brew Coffee", Distance: 0.3}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	acc := 12.5
	c := New(srv.URL)
	venues, err := c.ListVenues(ListOptions{
		Type:     "coffee",
		Search:   "brew",
		Location: &geo.UserLocation{Latitude: 40.7128, Longitude: -74.006, Accuracy: &acc},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(venues) != 1 || venues[0].Distance != 0.3 {
		t.Fatalf("venues = %+v", venues)
	}
}

func TestListVenuesNoParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).ListVenues(ListOptions{}); err != nil {
		t.Fatalf("list: %v", err)
	}
}

func TestUpdateVenueSendsPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("method = %s, want PATCH", r.Method)
		}
		if r.URL.Path != "/api/venues/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"name":"New","rating":null}` {
			t.Errorf("body = %s", body)
		}
		_, _ = w.Write([]byte(`{"id":7,"name":"New"}`))
	}))
	defer srv.Close()

	p := venue.Patch{Name: venue.SetTo("New"), Rating: venue.Clear[float64]()}
	v, err := New(srv.URL).UpdateVenue(7, p)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if v.ID != 7 || v.Name != "New" {
		t.Errorf("venue = %+v", v)
	}
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantIs  error
	}{
		{"not found", http.StatusNotFound, `{"error":"venue 9 not found"}`, "venue 9 not found", venue.ErrNotFound},
		{"bad request", http.StatusBadRequest, `{"error":"invalid input: name is required"}`, "invalid input: name is required", venue.ErrInvalidInput},
		{"plain server error", http.StatusInternalServerError, `oops`, "server error: Internal Server Error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL).GetVenue(9, nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err, tt.wantMsg)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != tt.status {
				t.Errorf("expected APIError with status %d, got %v", tt.status, err)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected errors.Is(%v)", tt.wantIs)
			}
		})
	}
}

type sampleFetcher struct{}

func (sampleFetcher) Fetch(context.Context) venue.Batch {
	return venue.Batch{Venues: source.Samples(), Fallback: true, Reason: source.ReasonFetchFailed}
}

// TestAgainstServer exercises the client against the real API handlers.
func TestAgainstServer(t *testing.T) {
	srv := httptest.NewServer(web.NewServer(venue.NewStore(sampleFetcher{})))
	defer srv.Close()
	c := New(srv.URL)

	bars, err := c.ListVenuesByType("bar")
	if err != nil {
		t.Fatalf("by type: %v", err)
	}
	if len(bars) != 1 || bars[0].Name != "Nightcap Lounge" {
		t.Errorf("bars = %+v", bars)
	}

	found, err := c.SearchVenues("farm-to-table")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != 2 {
		t.Errorf("search = %+v", found)
	}

	created, err := c.CreateVenue(venue.Input{
		Name:        "Late Pour",
		Type:        venue.TypeBar,
		Description: "Natural wine bar",
		Address:     "9 Orchard St, New York, NY",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 5 {
		t.Errorf("created id = %d, want 5", created.ID)
	}

	updated, err := c.UpdateVenue(created.ID, venue.Patch{OpeningHours: venue.SetTo("5PM - 1AM")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.OpeningHours == nil || *updated.OpeningHours != "5PM - 1AM" {
		t.Errorf("hours = %v", updated.OpeningHours)
	}

	loc := &geo.UserLocation{Latitude: 40.7128, Longitude: -74.006}
	got, err := c.GetVenue(2, loc)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Distance <= 0 {
		t.Errorf("distance = %v, want > 0", got.Distance)
	}

	if err := c.DeleteVenue(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.GetVenue(created.ID, nil); !errors.Is(err, venue.ErrNotFound) {
		t.Errorf("get deleted: err = %v, want not found", err)
	}

	res, err := c.Refresh()
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.Count != 4 || !res.Fallback {
		t.Errorf("refresh = %+v", res)
	}

	all, err := c.ListVenues(ListOptions{Location: loc})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 4 || all[0].ID != 1 {
		t.Errorf("list after refresh = %d venues, first %d", len(all), all[0].ID)
	}
}
