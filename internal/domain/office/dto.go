package office

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type OfficeResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
}

func NewOfficeResponse(o Office) OfficeResponse {
	return OfficeResponse{
		ID:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Latitude:  o.Latitude,
		Longitude: o.Longitude,
		Timezone:  o.Timezone,
	}
}

type CreateOfficeRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  string   `json:"timezone"`
}

func (r *CreateOfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	if len(r.Address) > 500 {
		errs.Add("address", "address must not exceed 500 characters")
	}
	validateCoordinates(&errs, r.Latitude, r.Longitude)
	validateTimezone(&errs, r.Timezone)

	return errs.OrNil()
}

type UpdateOfficeRequest struct {
	ID        string   `json:"-"`
	Name      *string  `json:"name,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timezone  *string  `json:"timezone,omitempty"`
}

func (r *UpdateOfficeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.Address != nil && len(*r.Address) > 500 {
		errs.Add("address", "address must not exceed 500 characters")
	}
	validateCoordinates(&errs, r.Latitude, r.Longitude)
	if r.Timezone != nil {
		validateTimezone(&errs, *r.Timezone)
	}

	return errs.OrNil()
}

func validateCoordinates(errs *validator.ValidationErrors, lat, lng *float64) {
	if (lat == nil) != (lng == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
		return
	}
	if lat != nil && !validator.IsValidCoordinate(*lat, *lng) {
		errs.Add("latitude", "latitude must be between -90 and 90 and longitude between -180 and 180")
	}
}

// An empty timezone means the company default applies.
func validateTimezone(errs *validator.ValidationErrors, tz string) {
	if tz == "" {
		return
	}
	if _, err := time.LoadLocation(tz); err != nil {
		errs.Add("timezone", "timezone must be a valid IANA zone such as Asia/Kolkata")
	}
}
