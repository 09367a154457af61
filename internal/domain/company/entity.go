package company

import (
	"time"

	"github.com/cmlabs-hris/hris-core-go/internal/pkg/geo"
)

type Company struct {
	ID                 string
	Name               string
	Timezone           string
	WorkStartTime      string // HH:MM
	OfficeLatitude     *float64
	OfficeLongitude    *float64
	OfficeRadiusMeters *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Fence returns the office geofence; ok is false unless all three fields are configured.
func (c Company) Fence() (geo.Fence, bool) {
	if c.OfficeLatitude == nil || c.OfficeLongitude == nil || c.OfficeRadiusMeters == nil {
		return geo.Fence{}, false
	}
	return geo.Fence{
		Center:       geo.Coordinate{Latitude: *c.OfficeLatitude, Longitude: *c.OfficeLongitude},
		RadiusMeters: *c.OfficeRadiusMeters,
	}, true
}

// Settings is the resolved operating configuration of a tenant.
type Settings struct {
	CompanyID       string
	Location        *time.Location
	WorkStartHour   int
	WorkStartMinute int
	Fence           *geo.Fence
}

// Defaults fill in tenant settings that are not stored on the company row.
type Defaults struct {
	Location      *time.Location
	WorkStartTime string
}
