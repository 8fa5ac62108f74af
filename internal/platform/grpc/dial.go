// Package grpc holds client and server helpers shared by gRPC services.
package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Dialer describes how helpers create client connections.
type Dialer interface {
	NewClient(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)
}

// DialerFunc adapts a constructor function to the Dialer interface.
type DialerFunc func(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// NewClient implements Dialer for DialerFunc.
func (fn DialerFunc) NewClient(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return fn(target, opts...)
}

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	// DialStageConnect indicates the client could not be created.
	DialStageConnect DialStage = "connect"
	// DialStageHealth indicates the health check failed.
	DialStageHealth DialStage = "health"
)

// DialError wraps dial and health check failures with the stage and target
// that failed.
type DialError struct {
	Stage DialStage
	Addr  string
	Err   error
}

// Error implements the error interface.
func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	if e.Addr == "" {
		return fmt.Sprintf("gRPC %s error: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("gRPC %s error for %s: %v", e.Stage, e.Addr, e.Err)
}

// Unwrap returns the underlying error.
func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultClientDialOptions returns standard dial options for in-cluster clients.
// The otel stats handler propagates trace context on every outbound call when
// a TracerProvider is registered.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialConfig describes a client connection that must pass a health check
// before use.
type DialConfig struct {
	Addr string
	// Dialer defaults to grpc.NewClient.
	Dialer Dialer
	// Timeout bounds the health wait. Zero waits until ctx ends.
	Timeout time.Duration
	Health  HealthCheck
	Options []gogrpc.DialOption
}

// DialWithHealth creates a client for cfg.Addr and waits until cfg.Health
// reports SERVING. The connection is closed when the health check fails.
func DialWithHealth(ctx context.Context, cfg DialConfig) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	dialer := cfg.Dialer
	if dialer == nil {
		dialer = DialerFunc(gogrpc.NewClient)
	}

	conn, err := dialer.NewClient(cfg.Addr, cfg.Options...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Addr: cfg.Addr, Err: err}
	}

	healthCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		healthCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := cfg.Health.Wait(healthCtx, conn); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Addr: cfg.Addr, Err: err}
	}
	return conn, nil
}
