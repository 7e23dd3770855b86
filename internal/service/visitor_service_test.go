package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/repository/memory"
	"github.com/condogate/condogate/internal/service"
)

type visitorFixture struct {
	svc        service.VisitorService
	residentID string
}

func newVisitorFixture(t *testing.T) *visitorFixture {
	t.Helper()

	users := memory.NewUserRepository()
	residents := memory.NewResidentRepository()
	visitors := memory.NewVisitorRepository(users, residents)

	userSvc := service.NewUserService(users, domain.NewUserDomainService(users), nil)
	residentSvc := service.NewResidentService(residents, users, nil)

	user := createUser(t, userSvc, "Maria Silva", "maria@example.com")
	resident, err := residentSvc.Create(context.Background(), &domain.CreateResidentRequest{
		UserID: user.ID,
		UnitID: "A-101",
	})
	require.NoError(t, err)

	return &visitorFixture{
		svc:        service.NewVisitorService(visitors, residents, nil),
		residentID: resident.ID,
	}
}

func (f *visitorFixture) createVisitor(t *testing.T, name, document string) *domain.VisitorResponse {
	t.Helper()
	visitor, err := f.svc.Create(context.Background(), &domain.CreateVisitorRequest{
		ResidentID: f.residentID,
		Name:       name,
		Document:   document,
		TimeLimit:  "23:59",
		DaysValid:  7,
	})
	require.NoError(t, err)
	return visitor
}

func TestVisitorServiceCreate(t *testing.T) {
	f := newVisitorFixture(t)

	visitor, err := f.svc.Create(context.Background(), &domain.CreateVisitorRequest{
		ResidentID:   f.residentID,
		Name:         "Ana Costa",
		Document:     "123.456.789-00",
		VehiclePlate: "abc1234",
		TimeLimit:    "23:59",
		DaysValid:    7,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, visitor.ID)
	assert.Equal(t, "12345678900", visitor.Document)
	require.NotNil(t, visitor.VehiclePlate)
	assert.Equal(t, "ABC1234", *visitor.VehiclePlate)
	assert.Equal(t, f.residentID, visitor.ResidentID)
	assert.Equal(t, "23:59", visitor.TimeLimit)
	assert.True(t, visitor.CanEnterNow)
	assert.False(t, visitor.ExpiresAt.IsZero())
}

func TestVisitorServiceCreateWithoutPlate(t *testing.T) {
	f := newVisitorFixture(t)

	visitor := f.createVisitor(t, "Ana Costa", "12345678900")
	assert.Nil(t, visitor.VehiclePlate)
}

func TestVisitorServiceCreateDefaultsDaysValid(t *testing.T) {
	f := newVisitorFixture(t)

	visitor, err := f.svc.Create(context.Background(), &domain.CreateVisitorRequest{
		ResidentID: f.residentID,
		Name:       "Ana Costa",
		Document:   "12345678900",
		TimeLimit:  "23:59",
	})
	require.NoError(t, err)
	assert.False(t, visitor.ExpiresAt.IsZero())
}

func TestVisitorServiceCreateValidation(t *testing.T) {
	f := newVisitorFixture(t)

	tests := []struct {
		name string
		req  domain.CreateVisitorRequest
	}{
		{"unknown resident", domain.CreateVisitorRequest{ResidentID: "nope", Name: "Ana Costa", Document: "12345678900", TimeLimit: "10:00"}},
		{"short name", domain.CreateVisitorRequest{ResidentID: f.residentID, Name: "An", Document: "12345678900", TimeLimit: "10:00"}},
		{"short document", domain.CreateVisitorRequest{ResidentID: f.residentID, Name: "Ana Costa", Document: "123", TimeLimit: "10:00"}},
		{"bad plate", domain.CreateVisitorRequest{ResidentID: f.residentID, Name: "Ana Costa", Document: "12345678900", VehiclePlate: "xx", TimeLimit: "10:00"}},
		{"bad time limit", domain.CreateVisitorRequest{ResidentID: f.residentID, Name: "Ana Costa", Document: "12345678900", TimeLimit: "24:00"}},
		{"days out of range", domain.CreateVisitorRequest{ResidentID: f.residentID, Name: "Ana Costa", Document: "12345678900", TimeLimit: "10:00", DaysValid: 31}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), &tt.req)
			assertKind(t, err, domain.KindValidation)
		})
	}
}

func TestVisitorServiceGetAll(t *testing.T) {
	f := newVisitorFixture(t)
	f.createVisitor(t, "Ana Costa", "11111111111")
	f.createVisitor(t, "Rui Santos", "22222222222")

	visitors, err := f.svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, visitors, 2)

	for _, v := range visitors {
		assert.Equal(t, "A-101", v.ResidentUnitID)
		assert.Equal(t, "Maria Silva", v.ResidentName)
	}
}

func TestVisitorServiceGetByID(t *testing.T) {
	f := newVisitorFixture(t)
	created := f.createVisitor(t, "Ana Costa", "11111111111")

	got, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "A-101", got.ResidentUnitID)

	missing, err := f.svc.GetByID(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVisitorServiceUpdate(t *testing.T) {
	f := newVisitorFixture(t)
	created := f.createVisitor(t, "Ana Costa", "11111111111")

	newName := "Ana Maria Costa"
	plate := "XYZ-9876"
	updated, err := f.svc.Update(context.Background(), created.ID, &domain.UpdateVisitorRequest{
		Name:         &newName,
		VehiclePlate: &plate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria Costa", updated.Name)
	require.NotNil(t, updated.VehiclePlate)
	assert.Equal(t, "XYZ-9876", *updated.VehiclePlate, "dashes are kept, only case is normalized")
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "11111111111", updated.Document, "document never changes")
}

func TestVisitorServiceUpdateMissing(t *testing.T) {
	f := newVisitorFixture(t)

	name := "Somebody New"
	_, err := f.svc.Update(context.Background(), "unknown", &domain.UpdateVisitorRequest{Name: &name})
	assertKind(t, err, domain.KindNotFound)
}
