// Package state parses state service flags and composes its transports.
package state

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/log"

	entrypoint "github.com/louisbranch/sharedstate/internal/platform/cmd"
	server "github.com/louisbranch/sharedstate/internal/services/state/app"
)

// Config holds state command configuration. Env names carry the
// SHAREDSTATE_ prefix.
type Config struct {
	HTTPAddr           string `env:"HTTP_ADDR"             envDefault:":8090"`
	GRPCAddr           string `env:"GRPC_ADDR"             envDefault:":8091"`
	DefaultRoom        string `env:"DEFAULT_ROOM"`
	MaxWatchersPerRoom int    `env:"MAX_WATCHERS_PER_ROOM" envDefault:"0"`
	MaxValueBytes      int    `env:"MAX_VALUE_BYTES"       envDefault:"65536"`
	RetainEmptyRooms   bool   `env:"RETAIN_EMPTY_ROOMS"    envDefault:"false"`
	DisableVersioning  bool   `env:"DISABLE_VERSIONING"    envDefault:"false"`
	LogLevel           string `env:"LOG_LEVEL"             envDefault:"info"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP/WebSocket listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC listen address (empty disables gRPC)")
	fs.StringVar(&cfg.DefaultRoom, "default-room", cfg.DefaultRoom, "room every WebSocket connection joins on connect")
	fs.IntVar(&cfg.MaxWatchersPerRoom, "max-watchers", cfg.MaxWatchersPerRoom, "max watchers per room (0 = unlimited)")
	fs.IntVar(&cfg.MaxValueBytes, "max-value-bytes", cfg.MaxValueBytes, "largest accepted value encoding in bytes (0 = 65536 default, negative = unlimited)")
	fs.BoolVar(&cfg.RetainEmptyRooms, "retain-empty-rooms", cfg.RetainEmptyRooms, "keep room state after its last watcher leaves")
	fs.BoolVar(&cfg.DisableVersioning, "disable-versioning", cfg.DisableVersioning, "store null versions and accept every update")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the state service until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	options := entrypoint.RunOptions{LogLevel: cfg.LogLevel}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceState, options, func(ctx context.Context, logger *log.Logger) error {
		if err := server.Run(ctx, serverConfig(cfg, logger)); err != nil {
			return fmt.Errorf("serve state: %w", err)
		}
		return nil
	})
}

func serverConfig(cfg Config, logger *log.Logger) server.Config {
	return server.Config{
		HTTPAddr:           cfg.HTTPAddr,
		GRPCAddr:           cfg.GRPCAddr,
		DefaultRoom:        cfg.DefaultRoom,
		MaxWatchersPerRoom: cfg.MaxWatchersPerRoom,
		MaxValueBytes:      cfg.MaxValueBytes,
		RetainEmptyRooms:   cfg.RetainEmptyRooms,
		DisableVersioning:  cfg.DisableVersioning,
		Logger:             logger,
	}
}
