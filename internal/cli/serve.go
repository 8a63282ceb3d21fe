package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/evcraddock/venue-finder/internal/config"
	"github.com/evcraddock/venue-finder/internal/db"
	"github.com/evcraddock/venue-finder/internal/geocode"
	"github.com/evcraddock/venue-finder/internal/logging"
	"github.com/evcraddock/venue-finder/internal/sheets"
	"github.com/evcraddock/venue-finder/internal/source"
	"github.com/evcraddock/venue-finder/internal/venue"
	"github.com/evcraddock/venue-finder/internal/web"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the venue API server",
		Long:  "Load venues from the configured spreadsheet (or the built-in samples) and serve the JSON API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(port)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default: config or 8080)")

	return cmd
}

// loadServerConfig reads config from --config and the environment, then
// applies command-line overrides.
func loadServerConfig(port string) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if port != "" {
		cfg.Port = port
	}
	if flagDB != "" {
		cfg.GeocodeCache = flagDB
	}
	return cfg, cfg.Validate()
}

// newResolver builds the geocoder chain. The returned close function releases
// the cache database, if one was opened.
func newResolver(cfg config.Config) (geocode.Resolver, func(), error) {
	if cfg.MapboxToken == "" {
		slog.Warn("no Mapbox token configured; venues without coordinates will not be geocoded")
	}
	var resolver geocode.Resolver = geocode.NewMapbox(cfg.MapboxToken, cfg.GeocodeTimeout)

	if cfg.GeocodeCache == config.CacheDisabled {
		return resolver, func() {}, nil
	}

	path := cfg.GeocodeCache
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	cache := geocode.NewCache(database, resolver)
	entries, err := cache.Len(context.Background())
	if err != nil {
		slog.Warn("counting geocode cache entries", "path", path, "error", err)
	}
	slog.Info("geocode cache opened", "path", path, "entries", entries)

	return cache, func() { closeDB(database) }, nil
}

// newStore wires the upstream source into a venue store.
func newStore(cfg config.Config, resolver geocode.Resolver) *venue.Store {
	if cfg.SheetsAPIKey == "" || cfg.SheetsID == "" {
		slog.Warn("Google Sheets credentials not configured; serving sample venues")
	}
	sheet := sheets.NewClient(cfg.SheetsAPIKey, cfg.SheetsID, cfg.SheetsRange, 0)
	src := source.New(sheet, resolver)
	return venue.NewStore(src, venue.WithTTL(cfg.RefreshTTL))
}

func runServe(ctx context.Context, cfg config.Config) error {
	logging.Setup(cfg.DevMode)

	resolver, closeResolver, err := newResolver(cfg)
	if err != nil {
		return err
	}
	defer closeResolver()

	store := newStore(cfg, resolver)

	// Warm the store before accepting requests.
	res, err := store.Refresh(ctx)
	if err != nil {
		return err
	}
	slog.Info("venues loaded", "count", res.Count, "fallback", res.Fallback, "reason", res.Reason)

	return web.NewServer(store).ListenAndServe(ctx, cfg.Addr())
}
