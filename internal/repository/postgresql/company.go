package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, timezone, work_start_time,
			   office_latitude, office_longitude, office_radius_meters,
			   created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.Timezone, &comp.WorkStartTime,
		&comp.OfficeLatitude, &comp.OfficeLongitude, &comp.OfficeRadiusMeters,
		&comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by id %s: %w", id, err)
	}
	return comp, nil
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (id, name, timezone, work_start_time, office_latitude, office_longitude, office_radius_meters)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newCompany.ID, newCompany.Name, newCompany.Timezone, newCompany.WorkStartTime,
		newCompany.OfficeLatitude, newCompany.OfficeLongitude, newCompany.OfficeRadiusMeters,
	).Scan(&newCompany.CreatedAt, &newCompany.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return newCompany, nil
}

// UpdateSettings implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateSettings(ctx context.Context, comp company.Company) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE companies
		SET name = $2, timezone = $3, work_start_time = $4,
			office_latitude = $5, office_longitude = $6, office_radius_meters = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		comp.ID, comp.Name, comp.Timezone, comp.WorkStartTime,
		comp.OfficeLatitude, comp.OfficeLongitude, comp.OfficeRadiusMeters,
	)
	if err != nil {
		return fmt.Errorf("failed to update company settings with id %s: %w", comp.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}
