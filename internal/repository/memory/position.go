package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/master/position"
)

type positionRepo struct{ s *Store }

func (r positionRepo) nameTaken(p position.Position) bool {
	for _, existing := range r.s.data.positions {
		if existing.CompanyID == p.CompanyID && existing.ID != p.ID && strings.EqualFold(existing.Name, p.Name) {
			return true
		}
	}
	return false
}

func (r positionRepo) GetByID(ctx context.Context, id string, companyID string) (position.Position, error) {
	defer r.s.lock(ctx)()
	p, ok := r.s.data.positions[id]
	if !ok || p.CompanyID != companyID {
		return position.Position{}, position.ErrPositionNotFound
	}
	return p, nil
}

func (r positionRepo) List(ctx context.Context, companyID string) ([]position.Position, error) {
	defer r.s.lock(ctx)()
	var out []position.Position
	for _, p := range r.s.data.positions {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r positionRepo) Create(ctx context.Context, p position.Position) (position.Position, error) {
	defer r.s.lock(ctx)()
	if r.nameTaken(p) {
		return position.Position{}, position.ErrPositionNameExists
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.data.positions[p.ID] = p
	return p, nil
}

func (r positionRepo) Update(ctx context.Context, p position.Position) (position.Position, error) {
	defer r.s.lock(ctx)()
	existing, ok := r.s.data.positions[p.ID]
	if !ok || existing.CompanyID != p.CompanyID {
		return position.Position{}, position.ErrPositionNotFound
	}
	if r.nameTaken(p) {
		return position.Position{}, position.ErrPositionNameExists
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	r.s.data.positions[p.ID] = p
	return p, nil
}
