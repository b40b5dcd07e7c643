package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentEmployees bounds the per-employee reads issued by Evaluate.
const maxConcurrentEmployees = 8

// Evaluator loads the calendar context of a company and classifies employee-days.
type Evaluator struct {
	attendance.AttendanceRepository
	attendance.PolicyRepository
	holiday.HolidayRepository
	leave.LeaveRequestRepository

	defaults attendance.Policy
	location *time.Location
	now      func() time.Time
}

func NewEvaluator(
	attendanceRepo attendance.AttendanceRepository,
	policyRepo attendance.PolicyRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRequestRepository,
	defaults attendance.Policy,
	location *time.Location,
) *Evaluator {
	if location == nil {
		location = time.UTC
	}
	defaults.IsDefault = true
	return &Evaluator{
		AttendanceRepository:   attendanceRepo,
		PolicyRepository:       policyRepo,
		HolidayRepository:      holidayRepo,
		LeaveRequestRepository: leaveRepo,
		defaults:               defaults,
		location:               location,
		now:                    time.Now,
	}
}

// Location is the timezone used for employees without an office timezone.
func (e *Evaluator) Location() *time.Location {
	return e.location
}

// Policy implements attendance.Evaluator.
func (e *Evaluator) Policy(ctx context.Context, companyID string) (attendance.Policy, error) {
	saved, err := e.PolicyRepository.Get(ctx, companyID)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("failed to get attendance policy: %w", err)
	}
	if saved == nil {
		p := e.defaults
		p.CompanyID = companyID
		return p, nil
	}
	return *saved, nil
}

// Evaluate implements attendance.Evaluator. Employees are processed concurrently;
// any failed read aborts the whole evaluation. Dates before an employee joined
// and dates after their local today are not classified.
func (e *Evaluator) Evaluate(ctx context.Context, companyID string, employees []employee.Employee, from, to time.Time) (map[string][]attendance.Day, error) {
	policy, err := e.Policy(ctx, companyID)
	if err != nil {
		return nil, err
	}
	holidays, err := e.holidaySet(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	calc := NewStatusCalculator(policy)
	dates := calendar.Days(from, to)

	results := make([][]attendance.Day, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmployees)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			records, err := e.AttendanceRepository.ListBetween(gctx, companyID, emp.ID, from, to)
			if err != nil {
				return fmt.Errorf("failed to list attendance for employee %s: %w", emp.ID, err)
			}
			leaves, err := e.approvedLeaves(gctx, companyID, emp.ID, from, to)
			if err != nil {
				return err
			}

			byDate := make(map[time.Time]*attendance.Attendance, len(records))
			for j := range records {
				byDate[calendar.DateOf(records[j].Date)] = &records[j]
			}

			joined := calendar.DateOf(emp.JoinedAt)
			today := calendar.DateOf(e.now().In(emp.Location(e.location)))
			days := make([]attendance.Day, 0, len(dates))
			for _, date := range dates {
				if date.Before(joined) || date.After(today) {
					continue
				}
				days = append(days, e.day(calc, emp, date, byDate[date], holidays, leaves[emp.ID]))
			}
			results[i] = days
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string][]attendance.Day, len(employees))
	for i, emp := range employees {
		out[emp.ID] = results[i]
	}
	return out, nil
}

// ClassifyRecords classifies stored records. employees must contain every
// record's employee, keyed by ID.
func (e *Evaluator) ClassifyRecords(ctx context.Context, companyID string, records []attendance.Attendance, employees map[string]employee.Employee) ([]attendance.Classification, error) {
	if len(records) == 0 {
		return nil, nil
	}

	from, to := records[0].Date, records[0].Date
	for _, r := range records[1:] {
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}

	policy, err := e.Policy(ctx, companyID)
	if err != nil {
		return nil, err
	}
	holidays, err := e.holidaySet(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	leaves, err := e.approvedLeaves(ctx, companyID, "", from, to)
	if err != nil {
		return nil, err
	}

	calc := NewStatusCalculator(policy)
	out := make([]attendance.Classification, len(records))
	for i := range records {
		emp, ok := employees[records[i].EmployeeID]
		if !ok {
			return nil, fmt.Errorf("employee %s not loaded for attendance %s", records[i].EmployeeID, records[i].ID)
		}
		out[i] = e.day(calc, emp, calendar.DateOf(records[i].Date), &records[i], holidays, leaves[emp.ID]).Classification
	}
	return out, nil
}

func (e *Evaluator) day(calc *StatusCalculator, emp employee.Employee, date time.Time, rec *attendance.Attendance, holidays calendar.Set, leaves []attendance.DateRange) attendance.Day {
	loc := emp.Location(e.location)
	in := attendance.DayInput{
		Date:     date,
		Shift:    emp.ShiftWindow(),
		WeekOffs: emp.WeekOffs(),
		Holidays: holidays,
		Leaves:   leaves,
	}
	in.PunchIn, in.PunchOut = recordClocks(rec, loc)
	if rec != nil && rec.PunchIn != nil && rec.PunchOut == nil {
		in.Open = date.Equal(calendar.DateOf(e.now().In(loc)))
	}

	return attendance.Day{
		Date:           date,
		Record:         rec,
		PunchIn:        in.PunchIn,
		PunchOut:       in.PunchOut,
		Classification: calc.Classify(in),
	}
}

func (e *Evaluator) holidaySet(ctx context.Context, companyID string, from, to time.Time) (calendar.Set, error) {
	list, err := e.HolidayRepository.ListBetween(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	set := calendar.NewSet()
	for _, h := range list {
		set[calendar.DateOf(h.Date)] = true
	}
	return set, nil
}

// approvedLeaves returns approved leave ranges keyed by employee ID.
func (e *Evaluator) approvedLeaves(ctx context.Context, companyID, employeeID string, from, to time.Time) (map[string][]attendance.DateRange, error) {
	requests, err := e.LeaveRequestRepository.ListActiveBetween(ctx, companyID, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	out := make(map[string][]attendance.DateRange)
	for _, r := range requests {
		if r.Status != leave.StatusApproved {
			continue
		}
		out[r.EmployeeID] = append(out[r.EmployeeID], attendance.DateRange{Start: r.StartDate, End: r.EndDate})
	}
	return out, nil
}

func recordClocks(rec *attendance.Attendance, loc *time.Location) (shiftclock.ClockTime, shiftclock.ClockTime) {
	if rec == nil {
		return shiftclock.Invalid, shiftclock.Invalid
	}
	return rec.Clocks(loc)
}
