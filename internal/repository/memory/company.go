package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
)

type companyRepo struct{ s *Store }

func (r companyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	defer r.s.lock(ctx)()
	c, ok := r.s.data.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r companyRepo) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	defer r.s.lock(ctx)()
	now := time.Now()
	newCompany.CreatedAt, newCompany.UpdatedAt = now, now
	r.s.data.companies[newCompany.ID] = newCompany
	return newCompany, nil
}

func (r companyRepo) UpdateSettings(ctx context.Context, c company.Company) error {
	defer r.s.lock(ctx)()
	existing, ok := r.s.data.companies[c.ID]
	if !ok {
		return company.ErrCompanyNotFound
	}
	existing.Name = c.Name
	existing.Timezone = c.Timezone
	existing.WorkStartTime = c.WorkStartTime
	existing.OfficeLatitude = c.OfficeLatitude
	existing.OfficeLongitude = c.OfficeLongitude
	existing.OfficeRadiusMeters = c.OfficeRadiusMeters
	existing.UpdatedAt = time.Now()
	r.s.data.companies[c.ID] = existing
	return nil
}
