// Package server wires the catalog runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	catalogv1 "github.com/ajmonfue/poke-explorer/api/catalog/v1"
	catalogservice "github.com/ajmonfue/poke-explorer/internal/services/catalog/api/grpc/catalog"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource"
	"github.com/ajmonfue/poke-explorer/internal/services/catalog/datasource/factory"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Server hosts the catalog gRPC API and data source lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	source     *factory.Opened
	logger     zerolog.Logger
}

// New creates a configured catalog server listening on the provided port.
func New(ctx context.Context, port int, cfg factory.Config) (*Server, error) {
	return NewWithAddr(ctx, fmt.Sprintf(":%d", port), cfg)
}

// NewWithAddr creates a configured catalog server for the provided address.
func NewWithAddr(ctx context.Context, addr string, cfg factory.Config) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	source, err := openDataSource(ctx, cfg)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(loggingInterceptor(*zerolog.Ctx(ctx))),
	)
	healthServer := health.NewServer()
	catalogv1.RegisterCatalogServiceServer(grpcServer, catalogservice.NewService(source.Source))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(catalogv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		source:     source,
		logger:     zerolog.Ctx(ctx).With().Str("data_source", string(source.Kind)).Logger(),
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a catalog server until context cancellation.
func Run(ctx context.Context, port int, cfg factory.Config) error {
	server, err := New(ctx, port, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	s.logger.Info().Str("addr", s.listener.Addr().String()).Msg("catalog server listening")
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.grpcServer.GracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// Close releases catalog server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.source != nil {
		s.source.Close()
		s.source = nil
	}
}

func openDataSource(ctx context.Context, cfg factory.Config) (*factory.Opened, error) {
	kind, err := datasource.ParseKind(cfg.Kind)
	if err != nil {
		return nil, err
	}
	if kind == datasource.KindSQLite {
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
	}
	source, err := factory.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog data source: %w", err)
	}
	return source, nil
}
