package company

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Timezone           string   `json:"timezone"`
	WorkStartTime      string   `json:"work_start_time"`
	OfficeLatitude     *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude    *float64 `json:"office_longitude,omitempty"`
	OfficeRadiusMeters *float64 `json:"office_radius_meters,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Timezone:           c.Timezone,
		WorkStartTime:      c.WorkStartTime,
		OfficeLatitude:     c.OfficeLatitude,
		OfficeLongitude:    c.OfficeLongitude,
		OfficeRadiusMeters: c.OfficeRadiusMeters,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          c.UpdatedAt.Format(time.RFC3339),
	}
}

type UpdateSettingsRequest struct {
	ActorID            string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	Timezone           *string  `json:"timezone,omitempty"`
	WorkStartTime      *string  `json:"work_start_time,omitempty"`
	OfficeLatitude     *float64 `json:"office_latitude,omitempty"`
	OfficeLongitude    *float64 `json:"office_longitude,omitempty"`
	OfficeRadiusMeters *float64 `json:"office_radius_meters,omitempty"`
	ClearGeofence      bool     `json:"clear_geofence,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{Field: "timezone", Message: "timezone must be a valid IANA zone"})
	}
	if r.WorkStartTime != nil && !validator.IsValidClock(*r.WorkStartTime) {
		errs = append(errs, validator.ValidationError{Field: "work_start_time", Message: "work_start_time must use HH:MM format"})
	}
	if r.OfficeLatitude != nil && !validator.IsValidLatitude(*r.OfficeLatitude) {
		errs = append(errs, validator.ValidationError{Field: "office_latitude", Message: "office_latitude must be between -90 and 90"})
	}
	if r.OfficeLongitude != nil && !validator.IsValidLongitude(*r.OfficeLongitude) {
		errs = append(errs, validator.ValidationError{Field: "office_longitude", Message: "office_longitude must be between -180 and 180"})
	}
	if r.OfficeRadiusMeters != nil && *r.OfficeRadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "office_radius_meters", Message: "office_radius_meters must be greater than 0"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
