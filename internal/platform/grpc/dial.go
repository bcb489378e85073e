// Package grpc holds client helpers shared by gRPC callers of the state
// service.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Connector builds a client connection for a target.
type Connector interface {
	Connect(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// Connect implements Connector.
func (fn ConnectorFunc) Connect(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	return fn(target, opts...)
}

// DialStage describes where a dial attempt failed.
type DialStage string

const (
	DialStageConnect DialStage = "connect"
	DialStageHealth  DialStage = "health"
)

// DialError wraps connect and health failures with the stage that failed.
type DialError struct {
	Stage  DialStage
	Target string
	Err    error
}

func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	if e.Target == "" {
		return fmt.Sprintf("gRPC %s error: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("gRPC %s error for %s: %v", e.Stage, e.Target, e.Err)
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DialConfig tunes DialWithHealth.
type DialConfig struct {
	// Timeout bounds connect plus the health wait. Zero means the caller's
	// context alone bounds it.
	Timeout time.Duration
	// HealthService is the service name passed to the health check.
	HealthService string
	// Connector defaults to grpc.NewClient.
	Connector Connector
	// Logger receives health wait progress at debug level.
	Logger *log.Logger
}

// DefaultClientDialOptions returns insecure transport credentials plus the
// otel client stats handler.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialWithHealth creates a client for target and blocks until its health
// check reports SERVING. The connection is closed when the wait fails.
func DialWithHealth(ctx context.Context, target string, cfg DialConfig, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	connector := cfg.Connector
	if connector == nil {
		connector = ConnectorFunc(gogrpc.NewClient)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	conn, err := connector.Connect(target, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Target: target, Err: err}
	}
	if err := WaitForHealth(ctx, conn, cfg.HealthService, cfg.Logger); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Target: target, Err: err}
	}
	return conn, nil
}
