package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/holiday"
)

type holidayRepo struct{ s *Store }

func (r holidayRepo) find(companyID, date string) (holiday.Holiday, bool) {
	for _, h := range r.s.data.holidays {
		if h.CompanyID == companyID && h.Date.Format("2006-01-02") == date {
			return h, true
		}
	}
	return holiday.Holiday{}, false
}

func (r holidayRepo) FindByDate(ctx context.Context, companyID string, date string) (holiday.Holiday, error) {
	defer r.s.lock(ctx)()
	h, ok := r.find(companyID, date)
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (r holidayRepo) ListBetween(ctx context.Context, companyID string, from, to string) ([]holiday.Holiday, error) {
	defer r.s.lock(ctx)()
	var out []holiday.Holiday
	for _, h := range r.s.data.holidays {
		day := h.Date.Format("2006-01-02")
		if h.CompanyID == companyID && day >= from && day <= to {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r holidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.find(h.CompanyID, h.Date.Format("2006-01-02")); ok {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	h.CreatedAt = time.Now()
	r.s.data.holidays[h.ID] = h
	return h, nil
}

func (r holidayRepo) CreateMany(ctx context.Context, hs []holiday.Holiday) (int, error) {
	defer r.s.lock(ctx)()
	inserted := 0
	for _, h := range hs {
		if _, ok := r.find(h.CompanyID, h.Date.Format("2006-01-02")); ok {
			continue
		}
		h.CreatedAt = time.Now()
		r.s.data.holidays[h.ID] = h
		inserted++
	}
	return inserted, nil
}

func (r holidayRepo) Delete(ctx context.Context, id string, companyID string) error {
	defer r.s.lock(ctx)()
	h, ok := r.s.data.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.data.holidays, id)
	return nil
}
