package catalog

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8090 {
		t.Fatalf("expected default port 8090, got %d", cfg.Port)
	}
	if cfg.DataSource != "pokeapi" {
		t.Fatalf("expected pokeapi data source, got %q", cfg.DataSource)
	}
	if cfg.PokeAPILanguage != "en" {
		t.Fatalf("expected en language, got %q", cfg.PokeAPILanguage)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9001", "-data-source", "sqlite", "-sqlite-path", "/tmp/x.db", "-preload"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	ds := cfg.DataSourceConfig()
	if cfg.Port != 9001 || ds.Kind != "sqlite" || ds.SQLitePath != "/tmp/x.db" || !ds.Preload {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseConfigFromEnv(t *testing.T) {
	t.Setenv("POKE_EXPLORER_DATA_SOURCE", "sqlite")
	t.Setenv("POKE_EXPLORER_REFRESH_SCHEDULE", "@daily")
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DataSource != "sqlite" || cfg.RefreshSchedule != "@daily" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}
