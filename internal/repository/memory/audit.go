package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
)

type auditRepo struct{ s *Store }

func (r auditRepo) Insert(ctx context.Context, e audit.Event) error {
	defer r.s.lock(ctx)()
	if err := r.s.check("audit.Insert"); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	r.s.data.audits = append(r.s.data.audits, e)
	return nil
}

func (r auditRepo) List(ctx context.Context, filter audit.EventFilter) ([]audit.Event, int64, error) {
	defer r.s.lock(ctx)()
	var out []audit.Event
	for _, e := range slices.Backward(r.s.data.audits) {
		if e.CompanyID != filter.CompanyID {
			continue
		}
		if filter.Action != nil && string(e.Action) != *filter.Action {
			continue
		}
		if filter.ActorID != nil && e.ActorID != *filter.ActorID {
			continue
		}
		out = append(out, e)
	}
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}
