package visit

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type VisitResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	EmployeeCode    *string    `json:"employee_code,omitempty"`
	DealerName      string     `json:"dealer_name"`
	DealerAddress   string     `json:"dealer_address"`
	VisitDate       string     `json:"visit_date"`
	CheckInAt       time.Time  `json:"check_in_at"`
	CheckOutAt      *time.Time `json:"check_out_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Latitude        *float64   `json:"latitude,omitempty"`
	Longitude       *float64   `json:"longitude,omitempty"`
	Purpose         string     `json:"purpose"`
	Outcome         *string    `json:"outcome,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

func NewVisitResponse(v Visit) VisitResponse {
	return VisitResponse{
		ID:              v.ID,
		EmployeeID:      v.EmployeeID,
		EmployeeName:    v.EmployeeName,
		EmployeeCode:    v.EmployeeCode,
		DealerName:      v.DealerName,
		DealerAddress:   v.DealerAddress,
		VisitDate:       calendar.Format(v.VisitDate),
		CheckInAt:       v.CheckInAt,
		CheckOutAt:      v.CheckOutAt,
		DurationMinutes: int(v.Duration().Minutes()),
		Latitude:        v.Latitude,
		Longitude:       v.Longitude,
		Purpose:         v.Purpose,
		Outcome:         v.Outcome,
		Notes:           v.Notes,
	}
}

type CheckInRequest struct {
	DealerName    string   `json:"dealer_name"`
	DealerAddress string   `json:"dealer_address"`
	Purpose       string   `json:"purpose"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	r.DealerName = strings.TrimSpace(r.DealerName)
	if r.DealerName == "" {
		errs.Add("dealer_name", "dealer_name is required")
	} else if len(r.DealerName) > 200 {
		errs.Add("dealer_name", "dealer_name must not exceed 200 characters")
	}
	if len(r.DealerAddress) > 500 {
		errs.Add("dealer_address", "dealer_address must not exceed 500 characters")
	}
	if len(r.Purpose) > 500 {
		errs.Add("purpose", "purpose must not exceed 500 characters")
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
	} else if r.Latitude != nil && !validator.IsValidCoordinate(*r.Latitude, *r.Longitude) {
		errs.Add("latitude", "coordinates are out of range")
	}

	return errs.OrNil()
}

type CheckOutRequest struct {
	ID      string  `json:"-"`
	Outcome *string `json:"outcome,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Outcome != nil && len(*r.Outcome) > 1000 {
		errs.Add("outcome", "outcome must not exceed 1000 characters")
	}
	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}
	return errs.OrNil()
}

type VisitFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	OpenOnly   bool    `json:"open_only"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *VisitFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	var start, end time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		var ok bool
		if start, ok = validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		var ok bool
		if end, ok = validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
	if f.Page < 0 {
		errs.Add("page", "page must not be negative")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs.Add("limit", "limit must be between 1 and 100")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	return errs.OrNil()
}

type ListVisitResponse struct {
	Visits     []VisitResponse `json:"visits"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
