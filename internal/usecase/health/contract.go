package health

import "context"

// DBPinger checks store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ChatChecker checks chat provider availability.
type ChatChecker interface {
	HealthCheck(ctx context.Context) error
}
