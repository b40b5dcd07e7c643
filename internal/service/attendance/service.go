package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/shiftclock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	attendance.PolicyRepository
	employee.EmployeeRepository
	office.OfficeRepository
	evaluator *Evaluator
	now       func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	policyRepo attendance.PolicyRepository,
	employeeRepo employee.EmployeeRepository,
	officeRepo office.OfficeRepository,
	evaluator *Evaluator,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		PolicyRepository:     policyRepo,
		EmployeeRepository:   employeeRepo,
		OfficeRepository:     officeRepo,
		evaluator:            evaluator,
		now:                  time.Now,
	}
}

// PunchIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := emp.Location(s.evaluator.Location())
	now := s.now().UTC()
	today := calendar.DateOf(now.In(loc))

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		CompanyID:        emp.CompanyID,
		EmployeeID:       emp.ID,
		Date:             today,
		PunchIn:          &now,
		PunchInLocation:  nilIfEmpty(req.Location),
		PunchInLatitude:  req.Latitude,
		PunchInLongitude: req.Longitude,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyPunchedIn) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	resp, err := s.respond(ctx, emp, created)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	resp.DistanceFromOfficeM = s.distanceFromOffice(ctx, emp, req.Latitude, req.Longitude)
	return resp, nil
}

// PunchOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	loc := emp.Location(s.evaluator.Location())
	now := s.now().UTC()
	today := calendar.DateOf(now.In(loc))

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil && emp.ShiftWindow().Overnight() {
		// An overnight shift is punched out on the day after it started.
		record, err = s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today.AddDate(0, 0, -1))
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to get yesterday's attendance: %w", err)
		}
		if record != nil && record.PunchOut != nil {
			record = nil
		}
	}
	if record == nil || record.PunchIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotPunchedIn
	}
	if record.PunchOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedOut
	}

	record.PunchOut = &now
	record.PunchOutLocation = nilIfEmpty(req.Location)
	record.PunchOutLatitude = req.Latitude
	record.PunchOutLongitude = req.Longitude
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.AttendanceRepository.Update(ctx, *record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	resp, err := s.respond(ctx, emp, *record)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	resp.DistanceFromOfficeM = s.distanceFromOffice(ctx, emp, req.Latitude, req.Longitude)
	return resp, nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.MyAttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	emp, err := s.currentEmployee(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.list(ctx, emp.CompanyID, filter.Scoped(emp.ID))
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return s.list(ctx, claims.CompanyID, filter)
}

func (s *AttendanceServiceImpl) list(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	records, total, err := s.AttendanceRepository.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	employees, err := s.loadEmployees(ctx, companyID, records)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	classifications, err := s.evaluator.ClassifyRecords(ctx, companyID, records, employees)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	items := make([]attendance.AttendanceResponse, 0, len(records))
	for i, rec := range records {
		loc := employees[rec.EmployeeID].Location(s.evaluator.Location())
		items = append(items, attendance.NewAttendanceResponse(rec, classifications[i], loc))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: items,
	}, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !claims.IsManager() && (claims.EmployeeID == nil || *claims.EmployeeID != record.EmployeeID) {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return s.respond(ctx, emp, record)
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	emp, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID, claims.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	loc := emp.Location(s.evaluator.Location())

	if req.PunchIn != nil {
		in := parsePunch(*req.PunchIn, record.Date, loc)
		record.PunchIn = &in
	}
	if req.PunchOut != nil {
		if *req.PunchOut == "" {
			record.PunchOut = nil
		} else {
			out := parsePunch(*req.PunchOut, record.Date, loc)
			if record.PunchIn != nil && out.Before(*record.PunchIn) && !isTimestamp(*req.PunchOut) {
				// A clock time earlier than the punch in belongs to the next day.
				out = out.AddDate(0, 0, 1)
			}
			record.PunchOut = &out
		}
		record.AutoClosed = false
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if record.PunchOut != nil && (record.PunchIn == nil || record.PunchOut.Before(*record.PunchIn)) {
		return attendance.AttendanceResponse{}, attendance.ErrInvalidPunchOrder
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return s.respond(ctx, emp, record)
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.AttendanceRepository.Delete(ctx, id, claims.CompanyID); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}

// Report implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Report(ctx context.Context, filter attendance.ReportFilter) (attendance.ReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ReportResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	var employees []employee.Employee
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		emp, err := s.EmployeeRepository.GetByID(ctx, *filter.EmployeeID, claims.CompanyID)
		if err != nil {
			return attendance.ReportResponse{}, err
		}
		employees = append(employees, emp)
	} else {
		active, err := s.EmployeeRepository.ListActive(ctx, claims.CompanyID)
		if err != nil {
			return attendance.ReportResponse{}, fmt.Errorf("failed to list employees: %w", err)
		}
		for _, emp := range active {
			if filter.OfficeID != nil && *filter.OfficeID != "" && (emp.OfficeID == nil || *emp.OfficeID != *filter.OfficeID) {
				continue
			}
			employees = append(employees, emp)
		}
	}

	policy, err := s.evaluator.Policy(ctx, claims.CompanyID)
	if err != nil {
		return attendance.ReportResponse{}, err
	}
	days, err := s.evaluator.Evaluate(ctx, claims.CompanyID, employees, filter.From, filter.To)
	if err != nil {
		return attendance.ReportResponse{}, err
	}

	resp := attendance.ReportResponse{
		StartDate: calendar.Format(filter.From),
		EndDate:   calendar.Format(filter.To),
		Policy:    attendance.NewPolicyResponse(policy),
		Employees: make([]attendance.EmployeeReport, 0, len(employees)),
	}
	for _, emp := range employees {
		row := attendance.EmployeeReport{
			EmployeeID:   emp.ID,
			EmployeeCode: emp.EmployeeCode,
			EmployeeName: emp.FullName,
			ShiftWindow:  emp.ShiftWindow().String(),
		}
		for _, d := range days[emp.ID] {
			row.Days = append(row.Days, attendance.NewReportDay(d))
			row.Summary.Add(d.Classification)
		}
		resp.Employees = append(resp.Employees, row)
	}

	return resp, nil
}

// GetPolicy implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetPolicy(ctx context.Context) (attendance.PolicyResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}

	policy, err := s.evaluator.Policy(ctx, claims.CompanyID)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}
	return attendance.NewPolicyResponse(policy), nil
}

// UpdatePolicy implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdatePolicy(ctx context.Context, req attendance.UpdatePolicyRequest) (attendance.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PolicyResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.PolicyResponse{}, err
	}

	saved, err := s.PolicyRepository.Upsert(ctx, attendance.Policy{
		CompanyID:        claims.CompanyID,
		LateGraceMinutes: req.LateGraceMinutes,
		FullDayHours:     req.FullDayHours,
		HalfDayHours:     req.HalfDayHours,
	})
	if err != nil {
		return attendance.PolicyResponse{}, fmt.Errorf("failed to save attendance policy: %w", err)
	}

	slog.Info("Attendance policy updated", "company_id", claims.CompanyID, "user_id", claims.UserID)
	return attendance.NewPolicyResponse(saved), nil
}

// Classify implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Classify(ctx context.Context, req attendance.ClassifyRequest) (attendance.ClassifyResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClassifyResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.ClassifyResponse{}, err
	}

	policy, err := s.evaluator.Policy(ctx, claims.CompanyID)
	if err != nil {
		return attendance.ClassifyResponse{}, err
	}
	if req.LateGraceMinutes != nil {
		policy.LateGraceMinutes = *req.LateGraceMinutes
		policy.IsDefault = false
	}
	if req.FullDayHours != nil {
		policy.FullDayHours = *req.FullDayHours
		policy.IsDefault = false
	}
	if req.HalfDayHours != nil {
		policy.HalfDayHours = *req.HalfDayHours
		policy.IsDefault = false
	}
	if err := attendance.ValidatePolicy(policy.LateGraceMinutes, policy.FullDayHours, policy.HalfDayHours); err != nil {
		return attendance.ClassifyResponse{}, err
	}

	weekOffs := make(map[time.Weekday]bool, len(req.WeekOffDays))
	for _, name := range req.WeekOffDays {
		if d, ok := validator.ParseWeekday(name); ok {
			weekOffs[d] = true
		}
	}

	in := attendance.DayInput{
		Date:     req.ParsedDate,
		PunchIn:  shiftclock.Parse(req.PunchIn),
		PunchOut: shiftclock.Parse(req.PunchOut),
		Shift:    shiftclock.WindowOrDefault(req.ShiftStart, req.ShiftEnd),
		WeekOffs: weekOffs,
		Holidays: calendar.NewSet(req.ParsedHolidays...),
		Leaves:   req.ParsedLeaves,
	}
	c := NewStatusCalculator(policy).Classify(in)

	hours := "N/A"
	if in.PunchIn.Valid() && in.PunchOut.Valid() {
		hours = attendance.FormatMinutes(c.WorkedMinutes)
	}

	return attendance.ClassifyResponse{
		Date:             calendar.Format(in.Date),
		Weekday:          in.Date.Weekday().String(),
		ShiftWindow:      in.Shift.String(),
		PunchIn:          in.PunchIn.Format24(),
		PunchOut:         in.PunchOut.Format24(),
		Status:           c.Status,
		LateMinutes:      c.LateMinutes,
		WorkedMinutes:    c.WorkedMinutes,
		OvertimeMinutes:  c.OvertimeMinutes,
		WorkingHoursText: hours,
		Policy:           attendance.NewPolicyResponse(policy),
	}, nil
}

// AutoCloseOpenPunches implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AutoCloseOpenPunches(ctx context.Context) (int, error) {
	now := s.now().UTC()

	open, err := s.AttendanceRepository.ListOpenBefore(ctx, calendar.DateOf(now))
	if err != nil {
		return 0, fmt.Errorf("failed to list open punches: %w", err)
	}

	closed := 0
	var errs []error
	for _, record := range open {
		if record.PunchIn == nil {
			continue
		}
		emp, err := s.EmployeeRepository.GetByID(ctx, record.EmployeeID, record.CompanyID)
		if err != nil {
			errs = append(errs, fmt.Errorf("attendance %s: %w", record.ID, err))
			continue
		}

		loc := emp.Location(s.evaluator.Location())
		if !record.Date.Before(calendar.DateOf(now.In(loc))) {
			continue
		}

		shift := emp.ShiftWindow()
		end := shift.End.On(record.Date, loc)
		if shift.Overnight() {
			end = end.AddDate(0, 0, 1)
		}
		if end.After(now) {
			continue
		}
		if end.Before(*record.PunchIn) {
			end = *record.PunchIn
		}

		end = end.UTC()
		record.PunchOut = &end
		record.AutoClosed = true
		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("attendance %s: %w", record.ID, err))
			continue
		}
		closed++
	}

	return closed, errors.Join(errs...)
}

func (s *AttendanceServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	employeeID, err := claims.RequireEmployeeID()
	if err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.Status != employee.StatusActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

func (s *AttendanceServiceImpl) loadEmployees(ctx context.Context, companyID string, records []attendance.Attendance) (map[string]employee.Employee, error) {
	out := make(map[string]employee.Employee)
	for _, r := range records {
		if _, ok := out[r.EmployeeID]; ok {
			continue
		}
		emp, err := s.EmployeeRepository.GetByID(ctx, r.EmployeeID, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to get employee %s: %w", r.EmployeeID, err)
		}
		out[r.EmployeeID] = emp
	}
	return out, nil
}

func (s *AttendanceServiceImpl) respond(ctx context.Context, emp employee.Employee, record attendance.Attendance) (attendance.AttendanceResponse, error) {
	if record.EmployeeName == nil {
		record.EmployeeName = &emp.FullName
		record.EmployeeCode = &emp.EmployeeCode
	}
	classifications, err := s.evaluator.ClassifyRecords(ctx, emp.CompanyID, []attendance.Attendance{record}, map[string]employee.Employee{emp.ID: emp})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(record, classifications[0], emp.Location(s.evaluator.Location())), nil
}

func (s *AttendanceServiceImpl) distanceFromOffice(ctx context.Context, emp employee.Employee, lat, lng *float64) *int {
	if emp.OfficeID == nil || lat == nil || lng == nil {
		return nil
	}
	o, err := s.OfficeRepository.GetByID(ctx, *emp.OfficeID, emp.CompanyID)
	if err != nil {
		slog.Warn("Office lookup for punch distance failed", "office_id", *emp.OfficeID, "error", err)
		return nil
	}
	return geo.DistanceFrom(o.Location(), lat, lng)
}

// parsePunch reads an RFC 3339 timestamp, or a clock time placed on date in loc.
// Values are expected to have passed validation.
func parsePunch(value string, date time.Time, loc *time.Location) time.Time {
	if t, ok := validator.IsValidDateTime(value); ok {
		return t.UTC()
	}
	return shiftclock.Parse(value).On(date, loc).UTC()
}

func isTimestamp(value string) bool {
	_, ok := validator.IsValidDateTime(value)
	return ok
}

func nilIfEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
