package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	statev1 "github.com/louisbranch/sharedstate/api/gen/go/state/v1"
	"github.com/louisbranch/sharedstate/internal/platform/logging"
	"github.com/louisbranch/sharedstate/internal/platform/timeouts"
	stateapi "github.com/louisbranch/sharedstate/internal/services/state/api/grpc/state"
	"github.com/louisbranch/sharedstate/internal/services/state/protocol"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

const (
	// framePayloadOverhead covers the room and version fields around a value.
	framePayloadOverhead   = 1024
	maxFrameEnvelopeBytes  = 256
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3
)

// Config defines the inputs for the state service process.
type Config struct {
	HTTPAddr string
	// GRPCAddr is optional; empty disables the gRPC listener.
	GRPCAddr string
	// DefaultRoom is joined by every WebSocket connection on connect.
	DefaultRoom        string
	MaxWatchersPerRoom int
	// MaxValueBytes caps a stored value's JSON encoding. Zero uses
	// store.DefaultMaxValueBytes; a negative value removes the limit.
	MaxValueBytes     int
	RetainEmptyRooms  bool
	DisableVersioning bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *log.Logger
}

// Server hosts the HTTP/WebSocket surface and, when configured, the gRPC
// surface over one shared protocol handler.
type Server struct {
	httpAddr        string
	grpcAddr        string
	shutdownTimeout time.Duration
	logger          *log.Logger
	handler         *protocol.Handler
	httpServer      *http.Server
	grpcServer      *gogrpc.Server
	health          *health.Server
	metrics         *prometheus.Registry
}

// NewServer builds a configured state server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	handler := newProtocolHandler(config, logger)
	metrics, err := newMetricsRegistry(handler)
	if err != nil {
		return nil, err
	}

	s := &Server{
		httpAddr:        httpAddr,
		grpcAddr:        strings.TrimSpace(config.GRPCAddr),
		shutdownTimeout: config.ShutdownTimeout,
		logger:          logger,
		handler:         handler,
		metrics:         metrics,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(handler, logger, metrics, config.DefaultRoom),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
	}
	if s.grpcAddr != "" {
		s.grpcServer = gogrpc.NewServer(gogrpc.StatsHandler(otelgrpc.NewServerHandler()))
		s.health = health.NewServer()
		statev1.RegisterStateServiceServer(s.grpcServer, stateapi.NewService(handler, logger))
		grpc_health_v1.RegisterHealthServer(s.grpcServer, s.health)
	}
	return s, nil
}

func newProtocolHandler(config Config, logger *log.Logger) *protocol.Handler {
	storeOpts := []store.Option{store.WithMaxValueBytes(config.MaxValueBytes)}
	if config.DisableVersioning {
		storeOpts = append(storeOpts, store.WithGenerator(store.NullGenerator()))
	}
	hub := protocol.NewHub(
		protocol.WithMaxWatchers(config.MaxWatchersPerRoom),
		protocol.WithHubLogger(logger),
	)
	return protocol.NewHandler(
		store.NewRegistry(storeOpts...),
		hub,
		protocol.WithLogger(logger),
		protocol.WithCleanupOnEmpty(!config.RetainEmptyRooms),
	)
}

func newMetricsRegistry(handler *protocol.Handler) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	registry := handler.Registry()
	cs := append(handler.Collectors(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "sharedstate",
			Subsystem: "store",
			Name:      "rooms",
			Help:      "Rooms currently holding state.",
		}, func() float64 { return float64(registry.Rooms()) }),
	)
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return reg, nil
}

// Run creates and serves a state server until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init state server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve state: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server, and the gRPC server when configured,
// until the context ends or either listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("state server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 2)
	s.logger.Info("http listening", "addr", s.httpAddr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("serve http: %w", err)
		}
	}()

	if s.grpcServer != nil {
		listener, err := net.Listen("tcp", s.grpcAddr)
		if err != nil {
			s.shutdownHTTP()
			return fmt.Errorf("listen gRPC on %s: %w", s.grpcAddr, err)
		}
		s.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
		s.health.SetServingStatus(stateapi.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
		s.logger.Info("gRPC listening", "addr", listener.Addr().String())
		go func() {
			if err := s.grpcServer.Serve(listener); err != nil && !errors.Is(err, gogrpc.ErrServerStopped) {
				serveErr <- fmt.Errorf("serve gRPC: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		s.stopGRPC()
		if err := s.shutdownHTTP(); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		s.stopGRPC()
		_ = s.shutdownHTTP()
		return err
	}
}

func (s *Server) shutdownHTTP() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

func (s *Server) stopGRPC() {
	if s.grpcServer == nil {
		return
	}
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.shutdownTimeout):
		s.grpcServer.Stop()
	}
}

// Handler exposes the protocol handler shared by both transports.
func (s *Server) Handler() *protocol.Handler {
	if s == nil {
		return nil
	}
	return s.handler
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Warn("close http server", "err", err)
	}
}
