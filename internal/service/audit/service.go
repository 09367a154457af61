package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/google/uuid"
)

type AuditServiceImpl struct {
	audit.AuditRepository
	now func() time.Time
}

func NewAuditService(auditRepository audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository, now: time.Now}
}

// Record implements audit.Recorder. The event is always logged; a failed insert is logged and dropped.
func (s *AuditServiceImpl) Record(ctx context.Context, e audit.Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}

	slog.InfoContext(ctx, "Audit event",
		"action", e.Action,
		"company_id", e.CompanyID,
		"actor_id", e.ActorID,
		"target", e.Target,
	)

	if err := s.AuditRepository.Insert(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Failed to persist audit event", "action", e.Action, "target", e.Target, "error", err)
	}
}

// List implements audit.AuditService.
// Subtle: this method shadows the method (AuditRepository).List of AuditServiceImpl.AuditRepository.
func (s *AuditServiceImpl) List(ctx context.Context, filter audit.EventFilter) (audit.ListEventResponse, error) {
	filter.Normalize()

	events, total, err := s.AuditRepository.List(ctx, filter)
	if err != nil {
		return audit.ListEventResponse{}, fmt.Errorf("failed to list audit events: %w", err)
	}

	resp := audit.ListEventResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
		Events:     make([]audit.EventResponse, 0, len(events)),
	}
	for _, e := range events {
		resp.Events = append(resp.Events, audit.NewEventResponse(e))
	}
	return resp, nil
}
