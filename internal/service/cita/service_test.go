package cita

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	"github.com/danidevdc/calendar-citas-app/internal/scheduling"
	statsService "github.com/danidevdc/calendar-citas-app/internal/service/stats"
	"github.com/danidevdc/calendar-citas-app/internal/store"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

type fakeRepo struct {
	rows      []*model.Cita
	loadErr   error
	createErr error
	updateErr error
	deleteErr error

	created []*model.Cita
	deleted []string
}

func (f *fakeRepo) LoadAll(ctx context.Context) ([]*model.Cita, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.rows, nil
}

func (f *fakeRepo) Create(ctx context.Context, c *model.Cita) (*model.Cita, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, c)
	return c, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, c *model.Cita) (*model.Cita, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return c, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestService(t *testing.T, repo *fakeRepo) (*Service, *store.CitaStore) {
	t.Helper()
	slots := scheduling.MustSlotModel(scheduling.DefaultSlotConfig())
	validator := scheduling.NewValidator(slots, nil)
	validator.Now = func() time.Time {
		return time.Date(2025, 12, 1, 7, 0, 0, 0, time.Local)
	}
	citaStore := store.NewCitaStore()
	svc := NewService(repo, citaStore, validator, slots, nil, nil, nil, nil)
	return svc, citaStore
}

func storedCita(id, fecha, hora string) *model.Cita {
	return &model.Cita{
		ID:       id,
		Paciente: "Sofia",
		Apellido: "Vargas",
		Carrera:  "Medicina",
		Fecha:    fecha,
		Hora:     hora,
		Duracion: 45,
		Estado:   model.EstadoPendiente,
	}
}

func TestSync(t *testing.T) {
	repo := &fakeRepo{rows: []*model.Cita{
		storedCita("a", "2026-01-05", "09:00"),
		storedCita("bad", "05/01/2026", "09:00"),
		storedCita("b", "2026-01-05", "10:00"),
	}}
	svc, citaStore := newTestService(t, repo)

	n, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, citaStore.Len())

	_, ok := citaStore.Get("bad")
	assert.False(t, ok)
}

func TestSyncFailureKeepsStore(t *testing.T) {
	repo := &fakeRepo{rows: []*model.Cita{storedCita("a", "2026-01-05", "09:00")}}
	svc, citaStore := newTestService(t, repo)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, citaStore.Len())

	repo.loadErr = errors.New("backend down")
	_, err = svc.Sync(context.Background())
	assert.Equal(t, apperrors.ErrPersistenceFailure, apperrors.CodeOf(err))
	assert.Equal(t, 1, citaStore.Len())
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)

	saved, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Carlos Perez Ruiz",
		Carrera:        "Derecho",
		Fecha:          "2026-01-05",
		Hora:           "09:00",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Carlos", saved.Paciente)
	assert.Equal(t, "Perez Ruiz", saved.Apellido)
	assert.Equal(t, model.DefaultDuracion, saved.Duracion)
	assert.Equal(t, model.EstadoPendiente, saved.Estado)
	assert.NotZero(t, saved.Timestamp)

	assert.Equal(t, 1, citaStore.Len())
	require.Len(t, repo.created, 1)
}

func TestCreateSlotTaken(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Carlos Perez",
		Carrera:        "Derecho",
		Fecha:          "2026-01-05",
		Hora:           "09:30",
		Duracion:       30,
	})
	assert.Equal(t, apperrors.ErrSlotTaken, apperrors.CodeOf(err))

	// Rejected bookings never reach the backend or the store.
	assert.Empty(t, repo.created)
	assert.Equal(t, 1, citaStore.Len())
}

func TestCreatePersistenceFailure(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("backend down")}
	svc, citaStore := newTestService(t, repo)

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Carlos Perez",
		Carrera:        "Derecho",
		Fecha:          "2026-01-05",
		Hora:           "09:00",
	})
	assert.Equal(t, apperrors.ErrPersistenceFailure, apperrors.CodeOf(err))
	assert.Equal(t, 0, citaStore.Len())
}

func TestUpdate(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))

	hora := "10:00"
	estado := model.EstadoAsistio
	saved, err := svc.Update(context.Background(), "a", &model.UpdateCitaRequest{
		Hora:   &hora,
		Estado: &estado,
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", saved.Hora)
	assert.Equal(t, model.EstadoAsistio, saved.Estado)

	got, ok := citaStore.Get("a")
	require.True(t, ok)
	assert.Equal(t, "10:00", got.Hora)
}

func TestUpdateKeepsOwnSlot(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))

	// Changing only the estado keeps (fecha, hora) and must not trip the
	// slot check against itself.
	estado := model.EstadoReprogramo
	_, err := svc.Update(context.Background(), "a", &model.UpdateCitaRequest{Estado: &estado})
	assert.NoError(t, err)
}

func TestUpdateSlotTaken(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))
	citaStore.Add(storedCita("b", "2026-01-05", "11:00"))

	hora := "11:00"
	_, err := svc.Update(context.Background(), "a", &model.UpdateCitaRequest{Hora: &hora})
	assert.Equal(t, apperrors.ErrSlotTaken, apperrors.CodeOf(err))
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t, &fakeRepo{})

	hora := "10:00"
	_, err := svc.Update(context.Background(), "missing", &model.UpdateCitaRequest{Hora: &hora})
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestDelete(t *testing.T) {
	repo := &fakeRepo{}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))

	require.NoError(t, svc.Delete(context.Background(), "a"))
	assert.Equal(t, 0, citaStore.Len())
	assert.Equal(t, []string{"a"}, repo.deleted)

	err := svc.Delete(context.Background(), "a")
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestDeletePersistenceFailureKeepsStore(t *testing.T) {
	repo := &fakeRepo{deleteErr: errors.New("backend down")}
	svc, citaStore := newTestService(t, repo)
	citaStore.Add(storedCita("a", "2026-01-05", "09:00"))

	err := svc.Delete(context.Background(), "a")
	assert.Equal(t, apperrors.ErrPersistenceFailure, apperrors.CodeOf(err))
	assert.Equal(t, 1, citaStore.Len())
}

func TestAvailability(t *testing.T) {
	svc, citaStore := newTestService(t, &fakeRepo{})
	day := "2026-01-05"
	citaStore.Add(storedCita("a", day, "08:00"))

	av := svc.Availability(day)
	assert.Equal(t, day, av.Fecha)
	assert.Equal(t, []string{"08:00", "08:30"}, av.Occupied)
	assert.Equal(t, "09:00", av.FirstAvailable)
	assert.False(t, av.FullyBooked)
	assert.Len(t, av.Free, 16)
}

func TestAvailabilityEmptyDay(t *testing.T) {
	svc, _ := newTestService(t, &fakeRepo{})

	av := svc.Availability("2026-01-05")
	assert.Empty(t, av.Occupied)
	assert.Equal(t, "08:00", av.FirstAvailable)
	assert.Len(t, av.Free, 18)
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

func TestMutationsInvalidateStats(t *testing.T) {
	repo := &fakeRepo{rows: []*model.Cita{storedCita("a", "2026-01-05", "09:00")}}
	inv := &countingInvalidator{}
	slots := scheduling.MustSlotModel(scheduling.DefaultSlotConfig())
	validator := scheduling.NewValidator(slots, nil)
	validator.Now = func() time.Time {
		return time.Date(2025, 12, 1, 7, 0, 0, 0, time.Local)
	}
	citaStore := store.NewCitaStore()
	svc := NewService(repo, citaStore, validator, slots, nil, nil, inv, nil)

	_, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	created, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Laura Campos",
		Carrera:        "Derecho",
		Fecha:          "2026-01-05",
		Hora:           "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	estado := model.EstadoAsistio
	_, err = svc.Update(context.Background(), created.ID, &model.UpdateCitaRequest{Estado: &estado})
	require.NoError(t, err)
	assert.Equal(t, 3, inv.calls)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, 4, inv.calls)

	// A rejected booking changes nothing, so the cache stays.
	_, err = svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Laura Campos",
		Carrera:        "Derecho",
		Fecha:          "2026-01-05",
		Hora:           "09:00",
	})
	require.Error(t, err)
	assert.Equal(t, 4, inv.calls)
}

func TestStatsSeeMutationBeforeTTL(t *testing.T) {
	repo := &fakeRepo{}
	slots := scheduling.MustSlotModel(scheduling.DefaultSlotConfig())
	validator := scheduling.NewValidator(slots, nil)
	validator.Now = func() time.Time {
		return time.Date(2025, 12, 1, 7, 0, 0, 0, time.Local)
	}
	citaStore := store.NewCitaStore()
	statsSvc := statsService.NewService(citaStore, time.Minute)
	svc := NewService(repo, citaStore, validator, slots, nil, nil, statsSvc, nil)

	assert.Equal(t, 0, statsSvc.Stats().Total)

	_, err := svc.Create(context.Background(), &model.CreateCitaRequest{
		NombreCompleto: "Marta Rios",
		Carrera:        "Enfermeria",
		Fecha:          "2026-01-05",
		Hora:           "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, statsSvc.Stats().Total)
}
