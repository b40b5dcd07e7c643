package office

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/office"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const companyID = "11111111-1111-1111-1111-111111111111"

type fakeOfficeRepo struct {
	offices   map[string]office.Office
	employees map[string]int
}

func (r *fakeOfficeRepo) Create(_ context.Context, o office.Office) (office.Office, error) {
	for _, existing := range r.offices {
		if existing.CompanyID == o.CompanyID && existing.Name == o.Name {
			return office.Office{}, office.ErrOfficeNameExists
		}
	}
	o.ID = uuid.NewString()
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

func (r *fakeOfficeRepo) Delete(_ context.Context, id, companyID string) error {
	if _, err := r.GetByID(context.Background(), id, companyID); err != nil {
		return err
	}
	delete(r.offices, id)
	return nil
}

func (r *fakeOfficeRepo) CountEmployees(_ context.Context, id, _ string) (int, error) {
	return r.employees[id], nil
}

func ownerCtx() context.Context {
	return jwt.NewContext(context.Background(), jwt.Claims{UserID: "u1", CompanyID: companyID, Role: user.RoleOwner})
}

func ptr[T any](v T) *T { return &v }

func TestOfficeLifecycle(t *testing.T) {
	repo := &fakeOfficeRepo{offices: map[string]office.Office{}, employees: map[string]int{}}
	svc := NewOfficeService(repo)
	ctx := ownerCtx()

	created, err := svc.Create(ctx, office.CreateOfficeRequest{Name: "Pune", Address: "FC Road", Latitude: ptr(18.52), Longitude: ptr(73.85), Timezone: "Asia/Kolkata"})
	require.NoError(t, err)
	assert.True(t, validator.IsValidUUID(created.ID))

	_, err = svc.Create(ctx, office.CreateOfficeRequest{Name: "Pune"})
	assert.ErrorIs(t, err, office.ErrOfficeNameExists)

	updated, err := svc.Update(ctx, office.UpdateOfficeRequest{ID: created.ID, Address: ptr("MG Road")})
	require.NoError(t, err)
	assert.Equal(t, "MG Road", updated.Address)
	assert.Equal(t, "Pune", updated.Name)
	assert.Equal(t, 18.52, *updated.Latitude)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	repo.employees[created.ID] = 2
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), office.ErrOfficeInUse)

	repo.employees[created.ID] = 0
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, office.ErrOfficeNotFound)
	_, err = svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, office.ErrOfficeNotFound)
}

func TestCreate_CoordinatesTogether(t *testing.T) {
	svc := NewOfficeService(&fakeOfficeRepo{offices: map[string]office.Office{}})

	_, err := svc.Create(ownerCtx(), office.CreateOfficeRequest{Name: "Goa", Latitude: ptr(15.49)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}
