package company

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-core-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-core-go/internal/domain/company"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/timeutil"
	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CompanyServiceImpl struct {
	company.CompanyRepository
	defaults company.Defaults
	audit    audit.Recorder
}

func NewCompanyService(companyRepository company.CompanyRepository, defaults company.Defaults, recorder audit.Recorder) company.CompanyService {
	return &CompanyServiceImpl{
		CompanyRepository: companyRepository,
		defaults:          defaults,
		audit:             recorder,
	}
}

// Settings implements company.SettingsProvider.
func (c *CompanyServiceImpl) Settings(ctx context.Context, companyID string) (company.Settings, error) {
	comp, err := c.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return company.Settings{}, err
	}

	settings := company.Settings{
		CompanyID: comp.ID,
		Location:  timeutil.LoadLocation(comp.Timezone, c.defaults.Location),
	}

	hour, minute, err := timeutil.ParseClock(comp.WorkStartTime)
	if err != nil {
		hour, minute, err = timeutil.ParseClock(c.defaults.WorkStartTime)
		if err != nil {
			return company.Settings{}, fmt.Errorf("failed to resolve work start time for company %s: %w", companyID, err)
		}
	}
	settings.WorkStartHour, settings.WorkStartMinute = hour, minute

	if fence, ok := comp.Fence(); ok {
		settings.Fence = &fence
	}
	return settings, nil
}

// GetByID implements company.CompanyService.
// Subtle: this method shadows the method (CompanyRepository).GetByID of CompanyServiceImpl.CompanyRepository.
func (c *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	comp, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(comp), nil
}

// UpdateSettings implements company.CompanyService.
// Subtle: this method shadows the method (CompanyRepository).UpdateSettings of CompanyServiceImpl.CompanyRepository.
func (c *CompanyServiceImpl) UpdateSettings(ctx context.Context, id string, req company.UpdateSettingsRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	comp, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Timezone != nil {
		comp.Timezone = *req.Timezone
	}
	if req.WorkStartTime != nil {
		comp.WorkStartTime = *req.WorkStartTime
	}
	if req.ClearGeofence {
		comp.OfficeLatitude, comp.OfficeLongitude, comp.OfficeRadiusMeters = nil, nil, nil
	} else {
		if req.OfficeLatitude != nil {
			comp.OfficeLatitude = req.OfficeLatitude
		}
		if req.OfficeLongitude != nil {
			comp.OfficeLongitude = req.OfficeLongitude
		}
		if req.OfficeRadiusMeters != nil {
			comp.OfficeRadiusMeters = req.OfficeRadiusMeters
		}
	}

	// A fence is either complete or absent.
	set := 0
	for _, v := range []*float64{comp.OfficeLatitude, comp.OfficeLongitude, comp.OfficeRadiusMeters} {
		if v != nil {
			set++
		}
	}
	if set != 0 && set != 3 {
		return company.CompanyResponse{}, validator.ValidationErrors{{
			Field:   "office_radius_meters",
			Message: "office_latitude, office_longitude and office_radius_meters must be set together",
		}}
	}

	if err := c.CompanyRepository.UpdateSettings(ctx, comp); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company settings: %w", err)
	}

	details := map[string]any{"timezone": comp.Timezone, "work_start_time": comp.WorkStartTime}
	if fence, ok := comp.Fence(); ok {
		details["office_latitude"] = fence.Center.Latitude
		details["office_longitude"] = fence.Center.Longitude
		details["office_radius_meters"] = fence.RadiusMeters
	}
	c.audit.Record(ctx, audit.Event{
		CompanyID: comp.ID,
		ActorID:   req.ActorID,
		Action:    audit.ActionCompanyUpdated,
		Target:    "company:" + comp.ID,
		Details:   details,
	})

	slog.Info("Company settings updated", "company_id", comp.ID, "timezone", comp.Timezone)

	updated, err := c.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return company.NewCompanyResponse(updated), nil
}

