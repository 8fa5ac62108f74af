// Package logging configures the zerolog loggers shared by every service.
//
// Loggers travel through context.Context: commands attach one with
// Logger.WithContext and components read it back with zerolog.Ctx, falling
// back to a disabled logger when nothing was attached.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ajmonfue/poke-explorer/internal/platform/config"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func init() {
	zerolog.ErrorFieldName = "err"
}

// Format selects the log encoding.
type Format string

const (
	// FormatConsole renders human-readable key=value lines.
	FormatConsole Format = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// Config controls logger construction.
type Config struct {
	Level  string `env:"POKE_EXPLORER_LOG_LEVEL" envDefault:"info"`
	Format Format `env:"POKE_EXPLORER_LOG_FORMAT" envDefault:"console"`
}

// FromEnv builds a service logger writing to stdout from environment settings.
func FromEnv(service string) (zerolog.Logger, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return zerolog.Nop(), err
	}
	return New(os.Stdout, cfg, service), nil
}

// New builds a logger tagged with the service name.
func New(w io.Writer, cfg Config, service string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}

	var out io.Writer = w
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat, NoColor: true}
	}
	ctx := zerolog.New(out).Level(ParseLevel(cfg.Level, zerolog.InfoLevel)).With().Timestamp()
	if service = strings.TrimSpace(service); service != "" {
		ctx = ctx.Str("service", service)
	}
	return ctx.Logger()
}

// ParseLevel maps a level name to a zerolog level, returning def for
// unknown or empty names.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return def
	}
}
