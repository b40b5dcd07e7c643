package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type LeaveResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	EmployeeCode *string    `json:"employee_code,omitempty"`
	LeaveType    Type       `json:"leave_type"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	TotalDays    int        `json:"total_days"`
	Reason       string     `json:"reason"`
	Status       Status     `json:"status"`
	ReviewedBy   *string    `json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewNote   *string    `json:"review_note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func NewLeaveResponse(l LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: l.EmployeeName,
		EmployeeCode: l.EmployeeCode,
		LeaveType:    l.LeaveType,
		StartDate:    calendar.Format(l.StartDate),
		EndDate:      calendar.Format(l.EndDate),
		TotalDays:    l.TotalDays(),
		Reason:       l.Reason,
		Status:       l.Status,
		ReviewedBy:   l.ReviewedBy,
		ReviewedAt:   l.ReviewedAt,
		ReviewNote:   l.ReviewNote,
		CreatedAt:    l.CreatedAt,
	}
}

type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of casual, sick, earned, unpaid")
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	if startOK && endOK {
		if end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if end.Sub(start) > 90*24*time.Hour {
			errs.Add("end_date", "a single leave request must not exceed 90 days")
		}
		r.Start, r.End = start, end
	}

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}

	return errs.OrNil()
}

type ReviewLeaveRequest struct {
	ID   string  `json:"-"`
	Note *string `json:"note,omitempty"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs.Add("note", "note must not exceed 500 characters")
	}
	return errs.OrNil()
}

type LeaveFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, []string{
		string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled),
	}) {
		errs.Add("status", "status must be one of pending, approved, rejected, cancelled")
	}
	if f.LeaveType != nil && *f.LeaveType != "" && !Type(*f.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of casual, sick, earned, unpaid")
	}
	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
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

type ListLeaveResponse struct {
	Requests   []LeaveResponse `json:"requests"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

type BalanceResponse struct {
	LeaveType Type    `json:"leave_type"`
	Entitled  float64 `json:"entitled"`
	Used      float64 `json:"used"`
	Pending   float64 `json:"pending"`
	Remaining float64 `json:"remaining"`
}
