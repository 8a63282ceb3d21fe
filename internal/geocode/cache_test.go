package geocode

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/evcraddock/venue-finder/internal/db"
	"github.com/evcraddock/venue-finder/internal/geo"
)

// stubResolver answers from a map and counts lookups.
type stubResolver struct {
	mu     sync.Mutex
	points map[string]geo.Point
	calls  int
}

func (s *stubResolver) Resolve(ctx context.Context, address string) (geo.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.points[address]
	return p, ok
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "geocode.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

func TestCacheHitSkipsResolver(t *testing.T) {
	stub := &stubResolver{points: map[string]geo.Point{
		"123 Main St": {Lat: 40.7128, Lng: -74.006},
	}}
	c := NewCache(openTestDB(t), stub)
	ctx := context.Background()

	p, ok := c.Resolve(ctx, "123 Main St")
	if !ok || p.Lat != 40.7128 || p.Lng != -74.006 {
		t.Fatalf("first resolve = %+v, %v", p, ok)
	}

	p, ok = c.Resolve(ctx, "  123   MAIN st ")
	if !ok || p.Lat != 40.7128 {
		t.Fatalf("cached resolve = %+v, %v", p, ok)
	}
	if stub.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", stub.calls)
	}

	n, err := c.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 1 {
		t.Errorf("len = %d, want 1", n)
	}
}

func TestCacheDoesNotStoreMisses(t *testing.T) {
	stub := &stubResolver{points: map[string]geo.Point{}}
	c := NewCache(openTestDB(t), stub)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, ok := c.Resolve(ctx, "nowhere"); ok {
			t.Fatal("expected miss")
		}
	}
	if stub.calls != 2 {
		t.Errorf("resolver calls = %d, want 2", stub.calls)
	}
	n, err := c.Len(ctx)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 0 {
		t.Errorf("len = %d, want 0", n)
	}
}

func TestCacheDegradesWhenDatabaseFails(t *testing.T) {
	d := openTestDB(t)
	if _, err := d.Exec("DROP TABLE geocode_cache"); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	stub := &stubResolver{points: map[string]geo.Point{"a": {Lat: 1, Lng: 2}}}
	c := NewCache(d, stub)

	p, ok := c.Resolve(context.Background(), "a")
	if !ok || p.Lat != 1 || p.Lng != 2 {
		t.Errorf("resolve = %+v, %v; want pass-through", p, ok)
	}
}

func TestCacheConcurrentWriters(t *testing.T) {
	stub := &stubResolver{points: map[string]geo.Point{}}
	for i := 0; i < 20; i++ {
		stub.points[string(rune('a'+i))] = geo.Point{Lat: float64(i + 1), Lng: float64(i + 1)}
	}
	c := NewCache(openTestDB(t), stub)

	var wg sync.WaitGroup
	for addr := range stub.points {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()
			if _, ok := c.Resolve(context.Background(), addr); !ok {
				t.Errorf("resolve %q failed", addr)
			}
		}(addr)
	}
	wg.Wait()

	n, err := c.Len(context.Background())
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if n != 20 {
		t.Errorf("len = %d, want 20", n)
	}
}

// namedStub is a stubResolver that reports a provider name.
type namedStub struct {
	stubResolver
	name string
}

func (n *namedStub) Provider() string { return n.name }

func TestCacheRecordsProvider(t *testing.T) {
	tests := []struct {
		name     string
		resolver Resolver
		want     string
	}{
		{
			"named resolver",
			&namedStub{stubResolver: stubResolver{points: map[string]geo.Point{"a": {Lat: 1, Lng: 2}}}, name: "nominatim"},
			"nominatim",
		},
		{
			"unnamed resolver",
			&stubResolver{points: map[string]geo.Point{"a": {Lat: 1, Lng: 2}}},
			"unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openTestDB(t)
			c := NewCache(d, tt.resolver)
			if _, ok := c.Resolve(context.Background(), "a"); !ok {
				t.Fatal("expected resolve to succeed")
			}

			var provider string
			if err := d.QueryRow("SELECT provider FROM geocode_cache WHERE address = 'a'").Scan(&provider); err != nil {
				t.Fatalf("select provider: %v", err)
			}
			if provider != tt.want {
				t.Errorf("provider = %q, want %q", provider, tt.want)
			}
		})
	}
}

func TestMapboxProvider(t *testing.T) {
	if got := NewMapbox("token", 0).Provider(); got != "mapbox" {
		t.Errorf("provider = %q, want mapbox", got)
	}
}
