package geocode

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/evcraddock/venue-finder/internal/geo"
)

// Cache remembers successful lookups in SQLite so refreshes do not geocode
// the same address twice. Misses are not cached.
type Cache struct {
	db       *sql.DB
	next     Resolver
	provider string
}

// namedResolver is a Resolver that reports which service it queries.
type namedResolver interface {
	Provider() string
}

// NewCache wraps next with a cache stored in db. The geocode_cache table is
// created by db.Open's migrations.
func NewCache(db *sql.DB, next Resolver) *Cache {
	provider := "unknown"
	if n, ok := next.(namedResolver); ok {
		provider = n.Provider()
	}
	return &Cache{db: db, next: next, provider: provider}
}

// cacheKey normalizes an address so trivial spacing and case changes share an entry.
func cacheKey(address string) string {
	return strings.ToLower(strings.Join(strings.Fields(address), " "))
}

// Resolve returns the cached point for address or asks the wrapped resolver.
func (c *Cache) Resolve(ctx context.Context, address string) (geo.Point, bool) {
	key := cacheKey(address)

	p, err := c.get(ctx, key)
	switch {
	case err == nil:
		return p, true
	case !errors.Is(err, sql.ErrNoRows):
		slog.Warn("reading geocode cache", "address", address, "error", err)
	}

	p, ok := c.next.Resolve(ctx, address)
	if !ok {
		return geo.Point{}, false
	}

	if err := c.put(ctx, key, p); err != nil {
		slog.Warn("writing geocode cache", "address", address, "error", err)
	}
	return p, true
}

func (c *Cache) get(ctx context.Context, key string) (geo.Point, error) {
	var p geo.Point
	err := c.db.QueryRowContext(ctx,
		"SELECT latitude, longitude FROM geocode_cache WHERE address = ?", key,
	).Scan(&p.Lat, &p.Lng)
	return p, err
}

func (c *Cache) put(ctx context.Context, key string, p geo.Point) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO geocode_cache (address, latitude, longitude, provider) VALUES (?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET latitude = excluded.latitude,
			longitude = excluded.longitude, provider = excluded.provider,
			updated_at = CURRENT_TIMESTAMP`,
		key, p.Lat, p.Lng, c.provider,
	)
	return err
}

// Len returns the number of cached addresses.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM geocode_cache").Scan(&n)
	return n, err
}
