package audit

import "context"

type AuditRepository interface {
	Insert(ctx context.Context, e Event) error
	List(ctx context.Context, filter EventFilter) ([]Event, int64, error)
}
