// Package timeouts defines shared timeout constants used by the service and
// its command-line client.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the state gRPC API.
const GRPCDial = 2 * time.Second

// GRPCRequest caps a single unary call made by the command-line client.
const GRPCRequest = 2 * time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful
// shutdown.
const Shutdown = 5 * time.Second

// WSWrite bounds a single frame write to a WebSocket peer.
const WSWrite = 5 * time.Second
