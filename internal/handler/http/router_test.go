package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts every handler with nil services. Tests override the
// handlers they exercise.
func newTestRouter(svc jwt.Service, override func(h *Handlers)) *chi.Mux {
	return newTestRouterWithOptions(svc, RouterOptions{Env: "test"}, override)
}

func newTestRouterWithOptions(svc jwt.Service, opts RouterOptions, override func(h *Handlers)) *chi.Mux {
	h := Handlers{
		Auth:       NewAuthHandler(svc, nil),
		Company:    NewCompanyHandler(nil),
		Office:     NewOfficeHandler(nil),
		Employee:   NewEmployeeHandler(nil),
		Holiday:    NewHolidayHandler(nil),
		Leave:      NewLeaveHandler(nil),
		Attendance: NewAttendanceHandler(nil),
		Expense:    NewExpenseHandler(nil),
		Visit:      NewVisitHandler(nil),
		Payroll:    NewPayrollHandler(nil),
		Dashboard:  NewDashboardHandler(nil),
	}
	if override != nil {
		override(&h)
	}
	return NewRouter(svc, h, opts)
}

type stubEmployeeService struct {
	employee.EmployeeService
}

func (s *stubEmployeeService) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	return employee.ListEmployeeResponse{Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *stubEmployeeService) Badge(ctx context.Context, id string) ([]byte, error) {
	return []byte("\x89PNG fake"), nil
}

func TestRouter_PermissionGates(t *testing.T) {
	svc := newTestJWTService(t)
	router := newTestRouter(svc, func(h *Handlers) {
		h.Employee = NewEmployeeHandler(&stubEmployeeService{})
	})

	tests := []struct {
		name   string
		role   user.Role
		method string
		path   string
		want   int
	}{
		{"employee cannot list employees", user.RoleEmployee, http.MethodGet, "/api/v1/employees", http.StatusForbidden},
		{"manager lists employees", user.RoleManager, http.MethodGet, "/api/v1/employees?page=2&limit=5", http.StatusOK},
		{"manager cannot manage payroll", user.RoleManager, http.MethodGet, "/api/v1/payroll/settings", http.StatusForbidden},
		{"employee cannot set policy", user.RoleEmployee, http.MethodPut, "/api/v1/attendance/policy", http.StatusForbidden},
		{"employee cannot approve leave", user.RoleEmployee, http.MethodPost, "/api/v1/leaves/abc/approve", http.StatusForbidden},
		{"manager cannot create office", user.RoleManager, http.MethodPost, "/api/v1/offices", http.StatusForbidden},
		{"employee cannot open dashboard", user.RoleEmployee, http.MethodGet, "/api/v1/dashboard", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, tt.role, nil))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRouter_Badge(t *testing.T) {
	svc := newTestJWTService(t)
	router := newTestRouter(svc, func(h *Handlers) {
		h.Employee = NewEmployeeHandler(&stubEmployeeService{})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/emp-1/badge", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken(t, svc, user.RoleEmployee, nil))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "badge-emp-1.png")
}

func TestRouter_ServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "receipts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "receipts", "r.txt"), []byte("receipt"), 0o644))

	svc := newTestJWTService(t)
	router := newTestRouterWithOptions(svc, RouterOptions{Env: "test", UploadsDir: dir}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/receipts/r.txt", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "receipt", w.Body.String())
}

func TestRouter_Heartbeat(t *testing.T) {
	router := newTestRouter(newTestJWTService(t), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
