package server

// Server defines the lifecycle of the registry server.
type Server interface {
	// RunServer serves requests until SIGINT, SIGTERM or SIGQUIT and then
	// shuts down gracefully.
	RunServer()

	// Shutdown stops the server, waiting for in-flight requests.
	Shutdown()
}
