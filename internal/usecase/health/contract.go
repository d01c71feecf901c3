package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EngineChecker reports whether a recommendation snapshot is installed.
type EngineChecker interface {
	Ready() bool
}
