package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/venue-finder/internal/geo"
	"github.com/evcraddock/venue-finder/internal/logging"
	"github.com/evcraddock/venue-finder/internal/venue"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("encoding error response", "error", err)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// apiStoreError maps store errors onto status codes.
func apiStoreError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, venue.ErrNotFound):
		apiError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, venue.ErrInvalidInput), errors.Is(err, geo.ErrOutOfRange):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled):
		// The client has gone away.
		apiError(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		slog.Error(action, "error", err, "request_id", logging.RequestID(r.Context()))
		apiError(w, fmt.Sprintf("%s: %v", action, err), http.StatusInternalServerError)
	}
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid venue ID %q", venue.ErrInvalidInput, r.PathValue("id"))
	}
	return id, nil
}

// userLocation reads the optional lat/lng/accuracy query parameters. It
// returns nil when neither coordinate is given.
func userLocation(r *http.Request) (*geo.UserLocation, error) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, fmt.Errorf("%w: lat and lng must be given together", venue.ErrInvalidInput)
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lat %q", venue.ErrInvalidInput, latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid lng %q", venue.ErrInvalidInput, lngStr)
	}

	loc := &geo.UserLocation{Latitude: lat, Longitude: lng}
	if accStr := q.Get("accuracy"); accStr != "" {
		acc, err := strconv.ParseFloat(accStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid accuracy %q", venue.ErrInvalidInput, accStr)
		}
		loc.Accuracy = &acc
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}

// apiListVenues returns venues filtered by type and search text, sorted by
// distance from the caller when a location is given.
func (s *Server) apiListVenues(w http.ResponseWriter, r *http.Request) {
	ft, err := venue.ParseFilterType(r.URL.Query().Get("type"))
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	loc, err := userLocation(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	all, err := s.store.All(r.Context())
	if err != nil {
		apiStoreError(w, r, "listing venues", err)
		return
	}

	filters := venue.Filters{Type: ft, Search: r.URL.Query().Get("search")}
	apiJSON(w, venue.Apply(all, filters, loc), http.StatusOK)
}

// apiGetVenue returns a single venue, with its distance when a location is given.
func (s *Server) apiGetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	loc, err := userLocation(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, err := s.store.Get(r.Context(), id)
	if err != nil {
		apiStoreError(w, r, "getting venue", err)
		return
	}
	if loc != nil {
		v.Distance = loc.DistanceTo(v.Point())
	}
	apiJSON(w, v, http.StatusOK)
}

// apiListVenuesByType returns venues of exactly one type.
func (s *Server) apiListVenuesByType(w http.ResponseWriter, r *http.Request) {
	t, err := venue.ParseType(r.PathValue("type"))
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	venues, err := s.store.ByType(r.Context(), t)
	if err != nil {
		apiStoreError(w, r, "listing venues by type", err)
		return
	}
	apiJSON(w, venues, http.StatusOK)
}

// apiSearchVenues returns venues matching q in name, description, address, or tags.
func (s *Server) apiSearchVenues(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	venues, err := s.store.Search(r.Context(), q)
	if err != nil {
		apiStoreError(w, r, "searching venues", err)
		return
	}
	apiJSON(w, venues, http.StatusOK)
}

// apiCreateVenue adds a venue.
func (s *Server) apiCreateVenue(w http.ResponseWriter, r *http.Request) {
	var in venue.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := s.store.Create(r.Context(), in)
	if err != nil {
		apiStoreError(w, r, "creating venue", err)
		return
	}
	apiJSON(w, v, http.StatusCreated)
}

// apiUpdateVenue applies a partial update. Absent keys are left unchanged and
// null clears an optional field.
func (s *Server) apiUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var p venue.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	v, err := s.store.Update(r.Context(), id, p)
	if err != nil {
		apiStoreError(w, r, "updating venue", err)
		return
	}
	apiJSON(w, v, http.StatusOK)
}

// apiDeleteVenue removes a venue.
func (s *Server) apiDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		apiStoreError(w, r, "deleting venue", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshResponse is the body returned by POST /api/venues/refresh.
type RefreshResponse struct {
	Message string `json:"message"`
	venue.RefreshResult
}

// apiRefreshVenues reloads venues from upstream.
func (s *Server) apiRefreshVenues(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Refresh(r.Context())
	if err != nil {
		apiStoreError(w, r, "refreshing venues", err)
		return
	}

	msg := "Venues refreshed"
	if res.Fallback {
		msg = "Venues refreshed from sample data"
	}
	apiJSON(w, RefreshResponse{Message: msg, RefreshResult: res}, http.StatusOK)
}
