// Package seed parses seed command flags and loads the catalog dataset into
// the SQLite store.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	entrypoint "github.com/ajmonfue/poke-explorer/internal/platform/cmd"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/sqlite"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/seed"
	"github.com/rs/zerolog"
)

// Config holds seed command configuration.
type Config struct {
	SQLitePath string `env:"POKE_EXPLORER_SQLITE_PATH" envDefault:"data/catalog.db"`
	// DataFile replaces the embedded dataset when set.
	DataFile string `env:"POKE_EXPLORER_SEED_FILE"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "SQLite catalog database path")
	fs.StringVar(&cfg.DataFile, "file", cfg.DataFile, "YAML dataset to load instead of the embedded one")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return Apply(ctx, cfg, out)
	})
}

// Apply seeds the store without the telemetry wrapper.
func Apply(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	path := strings.TrimSpace(cfg.SQLitePath)
	if path == "" {
		return fmt.Errorf("sqlite path is required")
	}

	ds, err := loadDataset(cfg.DataFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create sqlite dir: %w", err)
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := seed.Apply(ctx, store, ds)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().
		Str("path", path).
		Int("types", summary.Types).
		Int("generations", summary.Generations).
		Int("pokemons", summary.Pokemons).
		Msg("catalog seeded")
	fmt.Fprintf(out, "seeded %d pokemons, %d types, %d generations into %s\n",
		summary.Pokemons, summary.Types, summary.Generations, path)
	return nil
}

func loadDataset(file string) (seed.Dataset, error) {
	file = strings.TrimSpace(file)
	if file == "" {
		return seed.Embedded()
	}
	f, err := os.Open(file)
	if err != nil {
		return seed.Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return seed.Decode(f)
}
