// Package server runs the registry HTTP server: startup, signal handling
// and graceful shutdown.
package server
