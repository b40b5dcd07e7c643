package attendance

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/google/uuid"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
}

func newFakeAttendanceRepo(records ...attendance.Attendance) *fakeAttendanceRepo {
	r := &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	for _, existing := range r.records {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAlreadyPunchedIn
		}
	}
	a.ID = uuid.NewString()
	r.records[a.ID] = a
	return a, nil
}

func (r *fakeAttendanceRepo) GetByID(_ context.Context, id, companyID string) (attendance.Attendance, error) {
	a, ok := r.records[id]
	if !ok || a.CompanyID != companyID {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	for _, a := range r.records {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	if _, ok := r.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	r.records[a.ID] = a
	return nil
}

func (r *fakeAttendanceRepo) Delete(_ context.Context, id, companyID string) error {
	a, ok := r.records[id]
	if !ok || a.CompanyID != companyID {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != nil && *filter.EmployeeID != a.EmployeeID {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, int64(len(out)), nil
}

func (r *fakeAttendanceRepo) ListBetween(_ context.Context, companyID, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.CompanyID != companyID || (employeeID != "" && a.EmployeeID != employeeID) {
			continue
		}
		if calendar.Within(a.Date, from, to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAttendanceRepo) ListOpenBefore(_ context.Context, before time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range r.records {
		if a.PunchIn != nil && a.PunchOut == nil && a.Date.Before(before) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policy *attendance.Policy
}

func (r *fakePolicyRepo) Get(_ context.Context, _ string) (*attendance.Policy, error) {
	return r.policy, nil
}

func (r *fakePolicyRepo) Upsert(_ context.Context, p attendance.Policy) (attendance.Policy, error) {
	r.policy = &p
	return p, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, e := range employees {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) ExistsByCode(_ context.Context, companyID, code string) (bool, error) {
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.EmployeeCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e employee.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) SetStatus(_ context.Context, id, _ string, status employee.Status) error {
	e := r.employees[id]
	e.Status = status
	r.employees[id] = e
	return nil
}

func (r *fakeEmployeeRepo) List(ctx context.Context, _ employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	list, _ := r.ListActive(ctx, companyID)
	return list, int64(len(list)), nil
}

func (r *fakeEmployeeRepo) ListActive(_ context.Context, companyID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.Status == employee.StatusActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, nil
}

type fakeOfficeRepo struct {
	offices map[string]office.Office
}

func (r *fakeOfficeRepo) Create(_ context.Context, o office.Office) (office.Office, error) {
	r.offices[o.ID] = o
	return o, nil
}

func (r *fakeOfficeRepo) GetByID(_ context.Context, id, companyID string) (office.Office, error) {
	o, ok := r.offices[id]
	if !ok || o.CompanyID != companyID {
		return office.Office{}, office.ErrOfficeNotFound
	}
	return o, nil
}

func (r *fakeOfficeRepo) List(_ context.Context, companyID string) ([]office.Office, error) {
	var out []office.Office
	for _, o := range r.offices {
		if o.CompanyID == companyID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOfficeRepo) Update(_ context.Context, o office.Office) (office.Office, error) {
	r.offices[o.ID] = o
	return o, nil
}

func (r *fakeOfficeRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.offices, id)
	return nil
}

func (r *fakeOfficeRepo) CountEmployees(_ context.Context, _, _ string) (int, error) {
	return 0, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (r *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.holidays = append(r.holidays, h)
	return h, nil
}

func (r *fakeHolidayRepo) Upsert(_ context.Context, h holiday.Holiday) error {
	r.holidays = append(r.holidays, h)
	return nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, _, _ string) error {
	return nil
}

func (r *fakeHolidayRepo) ListBetween(_ context.Context, companyID string, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID == companyID && calendar.Within(h.Date, from, to) {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	requests []leave.LeaveRequest
}

func (r *fakeLeaveRepo) Create(_ context.Context, l leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.requests = append(r.requests, l)
	return l, nil
}

func (r *fakeLeaveRepo) GetByID(_ context.Context, id, _ string) (leave.LeaveRequest, error) {
	for _, l := range r.requests {
		if l.ID == id {
			return l, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *fakeLeaveRepo) List(_ context.Context, _ leave.LeaveFilter, _ string) ([]leave.LeaveRequest, int64, error) {
	return r.requests, int64(len(r.requests)), nil
}

func (r *fakeLeaveRepo) UpdateStatus(_ context.Context, _ leave.LeaveRequest) error {
	return nil
}

func (r *fakeLeaveRepo) HasOverlap(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return false, nil
}

func (r *fakeLeaveRepo) ListActiveBetween(_ context.Context, companyID, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range r.requests {
		if l.CompanyID != companyID || (employeeID != "" && l.EmployeeID != employeeID) {
			continue
		}
		if l.Status != leave.StatusApproved && l.Status != leave.StatusPending {
			continue
		}
		if calendar.Overlaps(l.StartDate, l.EndDate, from, to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeLeaveRepo) CountPending(_ context.Context, _ string) (int, error) {
	return 0, nil
}
