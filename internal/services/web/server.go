package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ajmonfue/poke-explorer/internal/platform/timeouts"
	"github.com/ajmonfue/poke-explorer/internal/services/web/catalogclient"
	"github.com/ajmonfue/poke-explorer/internal/services/web/platform/httpx"
	"github.com/ajmonfue/poke-explorer/internal/services/web/platform/observability"
	webstatic "github.com/ajmonfue/poke-explorer/internal/services/web/static"
	"github.com/rs/zerolog"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr string
	Catalog  catalogclient.Client
	Logger   zerolog.Logger
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler with its middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog client is required")
	}
	h := &handlers{catalog: cfg.Catalog}

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(webstatic.FS)))
	mux.HandleFunc("GET /up", handleUp)
	mux.HandleFunc("GET /{$}", h.listPage)
	mux.HandleFunc("GET /pokemon/{id}", h.detailPage)
	mux.HandleFunc("GET /api/pokemon", h.apiListPokemons)
	mux.HandleFunc("GET /api/pokemon/evolutions", h.apiEvolutions)
	mux.HandleFunc("GET /api/pokemon/{id}", h.apiPokemon)
	mux.HandleFunc("GET /api/generations", h.apiGenerations)
	mux.HandleFunc("GET /api/pokemon-types", h.apiPokemonTypes)
	mux.HandleFunc("/", h.notFound)

	return httpx.Chain(mux,
		httpx.RecoverPanic(cfg.Logger),
		httpx.RequestID(),
		observability.RequestLogger(cfg.Logger),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()
	zerolog.Ctx(ctx).Info().Str("addr", s.httpAddr).Msg("web listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}

func handleUp(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
