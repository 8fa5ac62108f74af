// Package catalog parses catalog service flags and launches the service.
package catalog

import (
	"context"
	"flag"

	entrypoint "github.com/ajmonfue/poke-explorer/internal/platform/cmd"
	server "github.com/ajmonfue/poke-explorer/internal/services/catalog/app"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/factory"
)

// Config holds catalog command configuration.
type Config struct {
	Port       int    `env:"POKE_EXPLORER_CATALOG_PORT" envDefault:"8090"`
	DataSource string `env:"POKE_EXPLORER_DATA_SOURCE" envDefault:"pokeapi"`
	SQLitePath string `env:"POKE_EXPLORER_SQLITE_PATH" envDefault:"data/catalog.db"`

	PokeAPIBaseURL      string  `env:"POKE_EXPLORER_POKEAPI_BASE_URL"`
	PokeAPILanguage     string  `env:"POKE_EXPLORER_POKEAPI_LANGUAGE" envDefault:"en"`
	PokeAPIPokemonLimit int     `env:"POKE_EXPLORER_POKEAPI_POKEMON_LIMIT"`
	PokeAPIConcurrency  int     `env:"POKE_EXPLORER_POKEAPI_CONCURRENCY"`
	PokeAPIRPS          float64 `env:"POKE_EXPLORER_POKEAPI_RPS" envDefault:"50"`
	PokeAPIBurst        int     `env:"POKE_EXPLORER_POKEAPI_BURST" envDefault:"50"`

	RefreshSchedule string `env:"POKE_EXPLORER_REFRESH_SCHEDULE"`
	Preload         bool   `env:"POKE_EXPLORER_PRELOAD"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The catalog gRPC server port")
	fs.StringVar(&cfg.DataSource, "data-source", cfg.DataSource, "Data source: sqlite or pokeapi")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite catalog database path")
	fs.StringVar(&cfg.PokeAPIBaseURL, "pokeapi-base-url", cfg.PokeAPIBaseURL, "PokeAPI base URL")
	fs.StringVar(&cfg.RefreshSchedule, "refresh-schedule", cfg.RefreshSchedule, "Cron schedule for reloading the PokeAPI catalog")
	fs.BoolVar(&cfg.Preload, "preload", cfg.Preload, "Load the PokeAPI catalog before serving")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DataSourceConfig maps command settings onto the data source factory.
func (c Config) DataSourceConfig() factory.Config {
	return factory.Config{
		Kind:                c.DataSource,
		SQLitePath:          c.SQLitePath,
		PokeAPIBaseURL:      c.PokeAPIBaseURL,
		PokeAPILanguage:     c.PokeAPILanguage,
		PokeAPIPokemonLimit: c.PokeAPIPokemonLimit,
		PokeAPIConcurrency:  c.PokeAPIConcurrency,
		PokeAPIRPS:          c.PokeAPIRPS,
		PokeAPIBurst:        c.PokeAPIBurst,
		RefreshSchedule:     c.RefreshSchedule,
		Preload:             c.Preload,
	}
}

// Run starts the catalog gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceCatalog, func(ctx context.Context) error {
		return server.Run(ctx, cfg.Port, cfg.DataSourceConfig())
	})
}
