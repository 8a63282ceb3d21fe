// Package source loads venues from the upstream spreadsheet, geocodes rows
// that lack coordinates, and falls back to built-in sample venues whenever
// the upstream data is unavailable or unusable.
package source

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/venue-finder/internal/geocode"
	"github.com/evcraddock/venue-finder/internal/sheets"
	"github.com/evcraddock/venue-finder/internal/venue"
)

// DefaultConcurrency caps in-flight geocoding requests per fetch.
const DefaultConcurrency = 10

// Fallback reasons reported in venue.Batch.Reason.
const (
	ReasonFetchFailed    = "upstream fetch failed"
	ReasonSchemaMismatch = "upstream sheet schema mismatch"
	ReasonNoRows         = "upstream returned no rows"
	ReasonNoCoordinates  = "no venue has coordinates after geocoding"
)

// TableFetcher reads the raw upstream table.
type TableFetcher interface {
	Fetch(ctx context.Context) (*sheets.Table, error)
}

// Source orchestrates fetch, normalization, and geocoding.
type Source struct {
	table       TableFetcher
	geocoder    geocode.Resolver
	concurrency int
}

// Option configures a Source.
type Option func(*Source)

// WithConcurrency sets the geocoding fan-out limit.
func WithConcurrency(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a Source. geocoder may be nil, in which case rows without
// coordinates stay at (0,0).
func New(table TableFetcher, geocoder geocode.Resolver, opts ...Option) *Source {
	s := &Source{
		table:       table,
		geocoder:    geocoder,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchAll returns the current venues, or the sample set when the upstream
// data is unavailable or unusable.
func (s *Source) FetchAll(ctx context.Context) []venue.Venue {
	return s.Fetch(ctx).Venues
}

// Fetch implements venue.Fetcher. It never fails: upstream errors are logged
// and replaced by the sample set.
func (s *Source) Fetch(ctx context.Context) venue.Batch {
	slog.Info("fetching venues from upstream")

	table, err := s.table.Fetch(ctx)
	if err != nil {
		slog.Error("fetching venue sheet", "error", err)
		return fallback(ReasonFetchFailed)
	}

	rows := dataRows(table.Rows)
	if len(rows) == 0 {
		slog.Warn("venue sheet has no data rows")
		return fallback(ReasonNoRows)
	}

	schema, err := sheets.Bind(table.Header)
	if err != nil {
		slog.Error("binding venue sheet schema", "error", err)
		return fallback(ReasonSchemaMismatch)
	}

	if !schema.Has(sheets.ColLatitude) || !schema.Has(sheets.ColLongitude) {
		slog.Info("venue sheet has no coordinate columns; every row will be geocoded")
	}

	venues := make([]venue.Venue, 0, len(rows))
	for i, row := range rows {
		v := schema.Parse(row, len(venues))
		if v.Name == "" || v.Address == "" {
			slog.Warn("skipping venue row without name or address", "row", i+1, "name", v.Name)
			continue
		}
		venues = append(venues, v)
	}
	if len(venues) == 0 {
		slog.Warn("venue sheet has no usable rows", "rows", len(rows))
		return fallback(ReasonNoRows)
	}

	s.geocodeMissing(ctx, venues)

	resolved := 0
	for i := range venues {
		if !venues[i].Point().IsZero() {
			resolved++
		}
	}
	if resolved == 0 {
		slog.Warn("no venues with valid coordinates after geocoding", "venues", len(venues))
		return fallback(ReasonNoCoordinates)
	}

	slog.Info("processed upstream venues", "venues", len(venues), "resolved", resolved)
	return venue.Batch{Venues: venues}
}

// geocodeMissing resolves coordinates for venues that have an address but no
// valid coordinates. Lookups run concurrently up to the configured limit and
// never overwrite coordinates that are already present.
func (s *Source) geocodeMissing(ctx context.Context, venues []venue.Venue) {
	if s.geocoder == nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range venues {
		v := &venues[i]
		if !v.Point().NeedsGeocode() {
			continue
		}
		g.Go(func() error {
			slog.Debug("geocoding venue", "name", v.Name, "address", v.Address)
			p, ok := s.geocoder.Resolve(gctx, v.Address)
			if ok {
				v.Latitude, v.Longitude = p.Lat, p.Lng
			}
			return nil
		})
	}

	// Workers never return errors; geocoding misses leave the venue at (0,0).
	_ = g.Wait()
}

// dataRows drops rows that are entirely blank.
func dataRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if !sheets.IsBlank(row) {
			out = append(out, row)
		}
	}
	return out
}

func fallback(reason string) venue.Batch {
	slog.Info("using sample venue data", "reason", reason)
	return venue.Batch{Venues: Samples(), Fallback: true, Reason: reason}
}
