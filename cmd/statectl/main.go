// Package main is a command-line client for the shared state service.
package main

import (
	"context"
	"flag"
	"os"

	statectl "github.com/louisbranch/sharedstate/internal/cmd/statectl"
	entrypoint "github.com/louisbranch/sharedstate/internal/platform/cmd"
	"github.com/louisbranch/sharedstate/internal/platform/config"
)

func main() {
	cfg, err := statectl.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := statectl.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
