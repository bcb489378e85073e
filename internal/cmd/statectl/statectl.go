// Package statectl implements a command-line client for the state service's
// gRPC API.
package statectl

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/sharedstate/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/sharedstate/internal/platform/grpc"
	"github.com/louisbranch/sharedstate/internal/platform/logging"
	"github.com/louisbranch/sharedstate/internal/platform/timeouts"
	stateapi "github.com/louisbranch/sharedstate/internal/services/state/api/grpc/state"
	"github.com/louisbranch/sharedstate/internal/services/state/store"
)

const usage = `usage: statectl [flags] <command> <room> [args]

commands:
  get <room>                                 print the room's value and version
  update <room> <expected-version|-> <json>  compare-and-swap the room's value ("-" means null)
  cleanup <room>                             drop the room's state
  watch <room>                               stream the room's state until interrupted`

// Config holds statectl configuration.
type Config struct {
	Target   string        `env:"GRPC_TARGET" envDefault:"localhost:8091"`
	Timeout  time.Duration `env:"CTL_TIMEOUT"`
	LogLevel string        `env:"LOG_LEVEL"   envDefault:"warn"`
	Command  string
	Room     string
	Args     []string
}

// ParseConfig parses environment and flags into a Config. The first two
// positional arguments are the command and the room.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Target, "target", cfg.Target, "state service gRPC target")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for get, update, and cleanup (0 = 2s)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) < 2 {
		return Config{}, errors.New(usage)
	}
	cfg.Command = rest[0]
	cfg.Room = strings.TrimSpace(rest[1])
	cfg.Args = rest[2:]
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Room == "" {
		return errors.New("room is required")
	}
	switch cfg.Command {
	case "get", "cleanup", "watch":
		if len(cfg.Args) != 0 {
			return fmt.Errorf("%s takes no arguments after the room", cfg.Command)
		}
	case "update":
		if len(cfg.Args) != 2 {
			return errors.New("update requires <expected-version|-> <json>")
		}
		if !json.Valid([]byte(cfg.Args[1])) {
			return errors.New("update value must be valid JSON")
		}
	default:
		return fmt.Errorf("unknown command %q\n%s", cfg.Command, usage)
	}
	return nil
}

// Run dials the service and executes the configured command, writing JSON
// lines to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger, err := logging.NewWithWriter(errOut, entrypoint.ServiceStateCtl, cfg.LogLevel)
	if err != nil {
		return err
	}

	conn, err := platformgrpc.DialWithHealth(ctx, cfg.Target, platformgrpc.DialConfig{
		Timeout:       timeouts.GRPCDial,
		HealthService: stateapi.ServiceName,
		Logger:        logger,
	}, platformgrpc.DefaultClientDialOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Warn("close connection", "err", closeErr)
		}
	}()
	return execute(ctx, stateapi.NewClient(conn), cfg, out)
}

func execute(ctx context.Context, client *stateapi.Client, cfg Config, out io.Writer) error {
	enc := json.NewEncoder(out)
	if cfg.Command == "watch" {
		return watch(ctx, client, cfg.Room, enc)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.GRPCRequest
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch cfg.Command {
	case "get":
		reply, err := client.Get(ctx, cfg.Room)
		if err != nil {
			return err
		}
		return enc.Encode(reply)
	case "update":
		expected := store.Version(cfg.Args[0])
		if cfg.Args[0] == "-" {
			expected = store.NoVersion
		}
		reply, err := client.Update(ctx, cfg.Room, expected, json.RawMessage(cfg.Args[1]))
		if err != nil {
			return err
		}
		return enc.Encode(reply)
	case "cleanup":
		if err := client.Cleanup(ctx, cfg.Room); err != nil {
			return err
		}
		return enc.Encode(cleanupOutput{Room: cfg.Room})
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

type cleanupOutput struct {
	Room string `json:"room"`
}

func watch(ctx context.Context, client *stateapi.Client, room string, enc *json.Encoder) error {
	stream, err := client.Watch(ctx, room)
	if err != nil {
		return err
	}
	for {
		reply, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := enc.Encode(reply); err != nil {
			return err
		}
	}
}
