package venue

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a snapshot is served before reads trigger a refresh.
const DefaultTTL = 15 * time.Minute

// Fetcher loads the full venue collection from upstream. Implementations
// absorb upstream failures and always return a usable batch.
type Fetcher interface {
	Fetch(ctx context.Context) Batch
}

// RefreshResult describes a completed refresh.
type RefreshResult struct {
	Count     int       `json:"count"`
	Fallback  bool      `json:"fallback"`
	Reason    string    `json:"reason,omitempty"`
	Refreshed time.Time `json:"refreshed"`
}

// Store is the in-memory authoritative collection of venues.
type Store struct {
	src Fetcher
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	venues   map[int64]*Venue
	nextID   int64
	loadedAt time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets how long a snapshot stays fresh. Zero disables automatic
// refresh once the store has been loaded.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store backed by src. The store is empty until the first
// read or an explicit Refresh.
func NewStore(src Fetcher, opts ...Option) *Store {
	s := &Store{
		src:    src,
		ttl:    DefaultTTL,
		now:    time.Now,
		venues: make(map[int64]*Venue),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh replaces the collection with a fresh upstream fetch. Concurrent
// calls share a single in-flight fetch.
func (s *Store) Refresh(ctx context.Context) (RefreshResult, error) {
	ch := s.group.DoChan("refresh", func() (interface{}, error) {
		// The fetch is shared, so one caller giving up must not cancel it for the rest.
		batch := s.src.Fetch(context.WithoutCancel(ctx))
		return s.replace(batch), nil
	})

	select {
	case <-ctx.Done():
		return RefreshResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return RefreshResult{}, res.Err
		}
		return res.Val.(RefreshResult), nil
	}
}

// replace clears the collection and inserts batch. Venues with a missing or
// duplicate id are given fresh ids after the highest id in the batch.
func (s *Store) replace(batch Batch) RefreshResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.venues = make(map[int64]*Venue, len(batch.Venues))
	var maxID int64
	var unassigned []Venue
	for i := range batch.Venues {
		v := batch.Venues[i].Clone()
		v.Distance = 0
		if v.ID <= 0 || s.venues[v.ID] != nil {
			unassigned = append(unassigned, v)
			continue
		}
		if v.ID > maxID {
			maxID = v.ID
		}
		s.venues[v.ID] = &v
	}
	for i := range unassigned {
		maxID++
		v := unassigned[i]
		slog.Warn("reassigning venue id", "id", v.ID, "new_id", maxID, "name", v.Name)
		v.ID = maxID
		s.venues[v.ID] = &v
	}
	s.nextID = maxID + 1
	s.loadedAt = s.now()

	slog.Info("venues refreshed", "count", len(s.venues), "fallback", batch.Fallback, "reason", batch.Reason)

	return RefreshResult{
		Count:     len(s.venues),
		Fallback:  batch.Fallback,
		Reason:    batch.Reason,
		Refreshed: s.loadedAt,
	}
}

// LastRefresh returns when the collection was last replaced, or the zero time.
func (s *Store) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// ensureFresh refreshes when the store has never been loaded or has outlived its TTL.
func (s *Store) ensureFresh(ctx context.Context) error {
	s.mu.RLock()
	stale := s.loadedAt.IsZero() || (s.ttl > 0 && s.now().Sub(s.loadedAt) > s.ttl)
	s.mu.RUnlock()

	if !stale {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

// All returns every venue ordered by id.
func (s *Store) All(ctx context.Context) ([]Venue, error) {
	return s.list(ctx, func(*Venue) bool { return true })
}

// Get returns the venue with the given id.
func (s *Store) Get(ctx context.Context, id int64) (Venue, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return Venue{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return Venue{}, notFound(id)
	}
	return v.Clone(), nil
}

// ByType returns venues whose type is exactly t.
func (s *Store) ByType(ctx context.Context, t Type) ([]Venue, error) {
	return s.list(ctx, func(v *Venue) bool { return v.Type == t })
}

// Search returns venues whose name, description, address, or any tag contains
// query, ignoring case.
func (s *Store) Search(ctx context.Context, query string) ([]Venue, error) {
	q := strings.ToLower(query)
	return s.list(ctx, func(v *Venue) bool {
		if containsFold(v.Name, q) || containsFold(v.Description, q) || containsFold(v.Address, q) {
			return true
		}
		for _, tag := range v.Tags {
			if containsFold(tag, q) {
				return true
			}
		}
		return false
	})
}

func (s *Store) list(ctx context.Context, keep func(*Venue) bool) ([]Venue, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Venue, 0, len(s.venues))
	for _, v := range s.venues {
		if keep(v) {
			out = append(out, v.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create validates in and stores it under the next id.
func (s *Store) Create(ctx context.Context, in Input) (Venue, error) {
	v := in.venue()
	if err := validate(&v); err != nil {
		return Venue{}, err
	}
	if err := s.ensureFresh(ctx); err != nil {
		return Venue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = s.nextID
	s.nextID++
	stored := v.Clone()
	s.venues[v.ID] = &stored

	return v, nil
}

// Update applies p to the venue with the given id.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (Venue, error) {
	if err := s.ensureFresh(ctx); err != nil {
		return Venue{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.venues[id]
	if !ok {
		return Venue{}, notFound(id)
	}

	updated := existing.Clone()
	if err := p.apply(&updated); err != nil {
		return Venue{}, err
	}
	if err := validate(&updated); err != nil {
		return Venue{}, err
	}

	stored := updated.Clone()
	s.venues[id] = &stored
	return updated, nil
}

// Delete removes the venue with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.ensureFresh(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return notFound(id)
	}
	delete(s.venues, id)
	return nil
}

func notFound(id int64) error {
	return fmt.Errorf("venue %d %w", id, ErrNotFound)
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}
