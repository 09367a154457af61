package audit

import "context"

// Recorder is the write-only sink used by the core. Failures are logged, never returned.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

type AuditService interface {
	Recorder
	List(ctx context.Context, filter EventFilter) (ListEventResponse, error)
}
