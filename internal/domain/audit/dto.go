package audit

import "time"

type EventFilter struct {
	CompanyID string  `json:"-"`
	Action    *string `json:"action,omitempty"`
	ActorID   *string `json:"actor_id,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize applies paging defaults.
func (f *EventFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
}

type EventResponse struct {
	ID        string         `json:"id"`
	ActorID   string         `json:"actor_id"`
	Action    Action         `json:"action"`
	Target    string         `json:"target"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt string         `json:"created_at"`
}

func NewEventResponse(e Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		Target:    e.Target,
		Details:   e.Details,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

type ListEventResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Events     []EventResponse `json:"events"`
}
