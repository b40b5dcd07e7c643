package holiday

import (
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type HolidayResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Name    string `json:"name"`
}

func NewHolidayResponse(h Holiday) HolidayResponse {
	return HolidayResponse{
		ID:      h.ID,
		Date:    h.Date.Format("2006-01-02"),
		Weekday: h.Date.Weekday().String(),
		Name:    h.Name,
	}
}

type CreateHolidayRequest struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	return errs.OrNil()
}

type HolidayFilter struct {
	Year int `json:"year"`
}

func (f *HolidayFilter) Validate() error {
	var errs validator.ValidationErrors
	if f.Year < 1970 || f.Year > 9999 {
		errs.Add("year", "year must be between 1970 and 9999")
	}
	return errs.OrNil()
}

// Calendar is the YAML document accepted by `hrisctl holidays import`:
//
//	holidays:
//	  - date: 2025-01-26
//	    name: Republic Day
type Calendar struct {
	Holidays []CreateHolidayRequest `yaml:"holidays"`
}

func (c *Calendar) Validate() error {
	var errs validator.ValidationErrors
	if len(c.Holidays) == 0 {
		errs.Add("holidays", "calendar has no holidays")
	}
	seen := make(map[string]bool, len(c.Holidays))
	for i := range c.Holidays {
		h := &c.Holidays[i]
		if err := h.Validate(); err != nil {
			errs.Add(fmt.Sprintf("holidays[%d]", i), err.Error())
			continue
		}
		if seen[h.Date] {
			errs.Add(fmt.Sprintf("holidays[%d]", i), "duplicate date "+h.Date)
		}
		seen[h.Date] = true
	}
	return errs.OrNil()
}
