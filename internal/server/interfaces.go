package server

// Server is the lifecycle contract for the transport servers this package
// manages: [RunServer] blocks until shutdown is requested, [Shutdown]
// releases whatever the server holds.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown stops the server gracefully and frees its resources.
	Shutdown()
}
