package office

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
)

type Office struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the office coordinates, or nil when they are not set.
func (o Office) Location() *geo.Point {
	if o.Latitude == nil || o.Longitude == nil {
		return nil
	}
	return &geo.Point{Latitude: *o.Latitude, Longitude: *o.Longitude}
}
