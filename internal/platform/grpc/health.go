package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Health polling defaults.
const (
	DefaultHealthMinBackoff  = 200 * time.Millisecond
	DefaultHealthMaxBackoff  = time.Second
	DefaultHealthCallTimeout = time.Second
)

// HealthCheck polls the standard gRPC health service for one registered
// service name until it reports SERVING.
type HealthCheck struct {
	// Service is the name the server registered its status under. Empty
	// checks the server as a whole.
	Service string
	Logger  zerolog.Logger

	MinBackoff  time.Duration
	MaxBackoff  time.Duration
	CallTimeout time.Duration
}

func (h HealthCheck) withDefaults() HealthCheck {
	if h.MinBackoff <= 0 {
		h.MinBackoff = DefaultHealthMinBackoff
	}
	if h.MaxBackoff < h.MinBackoff {
		h.MaxBackoff = max(DefaultHealthMaxBackoff, h.MinBackoff)
	}
	if h.CallTimeout <= 0 {
		h.CallTimeout = DefaultHealthCallTimeout
	}
	return h
}

// Wait blocks until conn reports h.Service as SERVING or ctx ends.
func (h HealthCheck) Wait(ctx context.Context, conn *gogrpc.ClientConn) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	h = h.withDefaults()
	logger := h.Logger.With().Str("target", conn.Target()).Str("health_service", h.Service).Logger()

	client := grpc_health_v1.NewHealthClient(conn)
	backoff := h.MinBackoff
	for attempt := 1; ; attempt++ {
		servingStatus, err := h.check(ctx, client)
		if err == nil && servingStatus == grpc_health_v1.HealthCheckResponse_SERVING {
			logger.Info().Int("attempt", attempt).Msg("gRPC health check is serving")
			return nil
		}
		event := logger.Debug().Int("attempt", attempt).Dur("retry_in", backoff)
		if err != nil {
			event = event.Err(err)
		} else {
			event = event.Str("status", servingStatus.String())
		}
		event.Msg("waiting for gRPC health")

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for %s health: %w", h.name(), ctx.Err())
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, h.MaxBackoff)
	}
}

func (h HealthCheck) check(ctx context.Context, client grpc_health_v1.HealthClient) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.CallTimeout)
	defer cancel()
	resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: h.Service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func (h HealthCheck) name() string {
	if h.Service == "" {
		return "gRPC server"
	}
	return h.Service
}
