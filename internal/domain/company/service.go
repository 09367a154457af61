package company

import (
	"context"
)

// SettingsProvider resolves the timezone, standard start time and geofence of a tenant.
type SettingsProvider interface {
	Settings(ctx context.Context, companyID string) (Settings, error)
}

type CompanyService interface {
	SettingsProvider
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	UpdateSettings(ctx context.Context, id string, req UpdateSettingsRequest) (CompanyResponse, error)
}
