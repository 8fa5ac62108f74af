// Package factory opens the configured catalog data source.
package factory

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ajmonfue/poke-explorer/internal/platform/timeouts"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/pokeapi"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/sqlite"
	"github.com/rs/zerolog"
)

// Config selects and configures a data source.
type Config struct {
	Kind string

	SQLitePath string

	PokeAPIBaseURL      string
	PokeAPILanguage     string
	PokeAPIPokemonLimit int
	PokeAPIConcurrency  int
	PokeAPIRPS          float64
	PokeAPIBurst        int

	// RefreshSchedule reloads the PokeAPI catalog on a cron spec when set.
	RefreshSchedule string
	// Preload assembles the PokeAPI catalog before Open returns.
	Preload bool
}

// Opened is an open data source plus its lifecycle hooks.
type Opened struct {
	Source datasource.DataSource
	Kind   datasource.Kind

	closers []func()
}

// Close releases resources held by the data source.
func (o *Opened) Close() {
	if o == nil {
		return
	}
	for i := len(o.closers) - 1; i >= 0; i-- {
		o.closers[i]()
	}
	o.closers = nil
}

// Open builds the data source named by cfg.Kind.
func Open(ctx context.Context, cfg Config) (*Opened, error) {
	kind, err := datasource.ParseKind(strings.TrimSpace(cfg.Kind))
	if err != nil {
		return nil, err
	}
	logger := zerolog.Ctx(ctx).With().Str("data_source", string(kind)).Logger()

	switch kind {
	case datasource.KindSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite data source: %w", err)
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("data source ready")
		return &Opened{
			Source:  store,
			Kind:    kind,
			closers: []func(){func() { _ = store.Close() }},
		}, nil
	default:
		adapter := pokeapi.New(pokeapi.Config{
			BaseURL:           cfg.PokeAPIBaseURL,
			Language:          cfg.PokeAPILanguage,
			PokemonLimit:      cfg.PokeAPIPokemonLimit,
			Concurrency:       cfg.PokeAPIConcurrency,
			RequestsPerSecond: cfg.PokeAPIRPS,
			Burst:             cfg.PokeAPIBurst,
			HTTPClient:        &http.Client{Timeout: timeouts.PokeAPIRequest},
		})
		opened := &Opened{Source: adapter, Kind: kind}
		if cfg.Preload {
			if err := adapter.Refresh(ctx); err != nil {
				return nil, fmt.Errorf("preload pokeapi catalog: %w", err)
			}
		}
		if schedule := strings.TrimSpace(cfg.RefreshSchedule); schedule != "" {
			refresher, err := pokeapi.NewRefresher(adapter, schedule, 0, logger)
			if err != nil {
				return nil, err
			}
			refresher.Start(context.WithoutCancel(ctx))
			opened.closers = append(opened.closers, refresher.Stop)
		}
		logger.Info().Str("base_url", cfg.PokeAPIBaseURL).Msg("data source ready")
		return opened, nil
	}
}
