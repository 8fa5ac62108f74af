// Package web parses web command flags and launches the browser service.
package web

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/ajmonfue/poke-explorer/internal/platform/cmd"
	"github.com/ajmonfue/poke-explorer/internal/platform/timeouts"
	"github.com/ajmonfue/poke-explorer/internal/services/web"
	"github.com/ajmonfue/poke-explorer/internal/services/web/catalogclient"
	"github.com/rs/zerolog"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr        string        `env:"POKE_EXPLORER_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	CatalogAddr     string        `env:"POKE_EXPLORER_CATALOG_ADDR" envDefault:"localhost:8090"`
	GRPCDialTimeout time.Duration `env:"POKE_EXPLORER_WEB_DIAL_TIMEOUT"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.GRPCDialTimeout <= 0 {
		cfg.GRPCDialTimeout = timeouts.GRPCDial
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.CatalogAddr, "catalog-addr", cfg.CatalogAddr, "Catalog service gRPC address")
	fs.DurationVar(&cfg.GRPCDialTimeout, "dial-timeout", cfg.GRPCDialTimeout, "Catalog health wait timeout")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run dials the catalog service and serves the web pages.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		catalog, err := catalogclient.Dial(ctx, cfg.CatalogAddr, cfg.GRPCDialTimeout)
		if err != nil {
			return err
		}
		defer catalog.Close()

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr: cfg.HTTPAddr,
			Catalog:  catalog,
			Logger:   *zerolog.Ctx(ctx),
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
