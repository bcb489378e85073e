// Package main starts the shared state service and handles termination.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	statecmd "github.com/louisbranch/sharedstate/internal/cmd/state"
	entrypoint "github.com/louisbranch/sharedstate/internal/platform/cmd"
)

func main() {
	cfg, err := statecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[STATE] ")

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := statecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
