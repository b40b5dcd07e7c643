package holiday

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const companyID = "11111111-1111-1111-1111-111111111111"

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday
}

func (r *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	for _, existing := range r.holidays {
		if existing.CompanyID == h.CompanyID && existing.Date.Equal(h.Date) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
	}
	h.ID = uuid.NewString()
	r.holidays[h.ID] = h
	return h, nil
}

func (r *fakeHolidayRepo) Upsert(_ context.Context, h holiday.Holiday) error {
	for id, existing := range r.holidays {
		if existing.CompanyID == h.CompanyID && existing.Date.Equal(h.Date) {
			existing.Name = h.Name
			r.holidays[id] = existing
			return nil
		}
	}
	h.ID = uuid.NewString()
	r.holidays[h.ID] = h
	return nil
}

func (r *fakeHolidayRepo) Delete(_ context.Context, id, companyID string) error {
	h, ok := r.holidays[id]
	if !ok || h.CompanyID != companyID {
		return holiday.ErrHolidayNotFound
	}
	delete(r.holidays, id)
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

func managerCtx() context.Context {
	return jwt.NewContext(context.Background(), jwt.Claims{UserID: "u1", CompanyID: companyID, Role: user.RoleManager})
}

func TestCreateListDelete(t *testing.T) {
	repo := &fakeHolidayRepo{holidays: map[string]holiday.Holiday{}}
	svc := NewHolidayService(passthroughTx{}, repo)
	ctx := managerCtx()

	created, err := svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-08-15", Name: "Independence Day"})
	require.NoError(t, err)
	assert.Equal(t, "Friday", created.Weekday)

	_, err = svc.Create(ctx, holiday.CreateHolidayRequest{Date: "2025-08-15", Name: "Again"})
	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)

	list, err := svc.List(ctx, holiday.HolidayFilter{Year: 2025})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.List(ctx, holiday.HolidayFilter{Year: 2024})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), holiday.ErrHolidayNotFound)
}

const calendarYAML = `
holidays:
  - date: 2025-01-26
    name: Republic Day
  - date: 2025-08-15
    name: Independence Day
  - date: 2025-10-02
    name: Gandhi Jayanti
`

func TestImport(t *testing.T) {
	repo := &fakeHolidayRepo{holidays: map[string]holiday.Holiday{}}
	svc := NewHolidayService(passthroughTx{}, repo)

	var cal holiday.Calendar
	require.NoError(t, yaml.Unmarshal([]byte(calendarYAML), &cal))

	n, err := svc.Import(context.Background(), companyID, cal)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-importing renames instead of duplicating.
	cal.Holidays[1].Name = "Independence Day (observed)"
	_, err = svc.Import(context.Background(), companyID, cal)
	require.NoError(t, err)
	assert.Len(t, repo.holidays, 3)

	cal.Holidays = append(cal.Holidays, holiday.CreateHolidayRequest{Date: "2025-01-26", Name: "Duplicate"})
	_, err = svc.Import(context.Background(), companyID, cal)
	assert.Error(t, err)
}
