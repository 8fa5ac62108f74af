// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the catalog service.
const GRPCDial = 5 * time.Second

// GRPCRequest caps the time a web request waits on one catalog call. The
// first PokeAPI catalog load can take a while, so it is generous.
const GRPCRequest = 2 * time.Minute

// PokeAPIRequest caps a single HTTP request to the PokeAPI.
const PokeAPIRequest = 15 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
