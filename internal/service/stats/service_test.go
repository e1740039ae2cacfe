package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	"github.com/danidevdc/calendar-citas-app/internal/store"
)

func cita(paciente, apellido, fecha, hora string, estado model.CitaEstado) *model.Cita {
	return &model.Cita{
		ID:       paciente + fecha + hora,
		Paciente: paciente,
		Apellido: apellido,
		Fecha:    fecha,
		Hora:     hora,
		Duracion: 45,
		Estado:   estado,
	}
}

func newTestService(t *testing.T, citas ...*model.Cita) *Service {
	t.Helper()
	citaStore := store.NewCitaStore()
	for _, c := range citas {
		citaStore.Add(c)
	}
	svc := NewService(citaStore, time.Minute)
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	}
	return svc
}

func TestStatsCounts(t *testing.T) {
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoPendiente),
		cita("Luis", "Diaz", "2026-03-02", "10:00", model.EstadoAsistio),
		cita("Eva", "Mora", "2026-03-03", "09:00", model.EstadoNoAsistio),
		cita("Juan", "Sosa", "2026-03-04", "09:00", model.EstadoReprogramo),
		cita("Rita", "Paz", "2026-03-05", "09:00", ""),
	)

	s := svc.Stats()
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.Pendientes)
	assert.Equal(t, 1, s.Asistieron)
	assert.Equal(t, 1, s.NoAsistieron)
	assert.Equal(t, 1, s.Reprogramaron)
}

func TestStatsPorMes(t *testing.T) {
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-02-10", "09:00", model.EstadoPendiente),
		cita("Luis", "Diaz", "2026-03-02", "10:00", model.EstadoPendiente),
		cita("Eva", "Mora", "2026-03-03", "09:00", model.EstadoPendiente),
	)

	s := svc.Stats()
	require.Len(t, s.PorMes, 2)
	assert.Equal(t, MonthCount{Mes: "2026-02", Cantidad: 1}, s.PorMes[0])
	assert.Equal(t, MonthCount{Mes: "2026-03", Cantidad: 2}, s.PorMes[1])
}

func TestStatsHorasMasOcupadas(t *testing.T) {
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoPendiente),
		cita("Luis", "Diaz", "2026-03-03", "09:30", model.EstadoPendiente),
		cita("Eva", "Mora", "2026-03-04", "11:00", model.EstadoPendiente),
	)

	s := svc.Stats()
	require.Len(t, s.HorasMasOcupadas, 2)
	// Half-hour variants collapse into their hour bucket.
	assert.Equal(t, HourCount{Hora: "09:00", Cantidad: 2}, s.HorasMasOcupadas[0])
	assert.Equal(t, HourCount{Hora: "11:00", Cantidad: 1}, s.HorasMasOcupadas[1])
}

func TestStatsTasaAsistencia(t *testing.T) {
	// Two confirmed outcomes in the past, one attended; pending and
	// future citas never count.
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoAsistio),
		cita("Luis", "Diaz", "2026-03-03", "09:00", model.EstadoNoAsistio),
		cita("Eva", "Mora", "2026-03-04", "09:00", model.EstadoPendiente),
		cita("Juan", "Sosa", "2026-04-01", "09:00", model.EstadoAsistio),
	)

	s := svc.Stats()
	assert.Equal(t, 50, s.TasaAsistencia)
}

func TestStatsTasaAsistenciaNoConfirmed(t *testing.T) {
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoPendiente),
	)

	assert.Equal(t, 0, svc.Stats().TasaAsistencia)
}

func TestStatsPacientesTop(t *testing.T) {
	svc := newTestService(t,
		cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoPendiente),
		cita("Ana", "Gomez", "2026-03-09", "09:00", model.EstadoPendiente),
		cita("Luis", "Diaz", "2026-03-02", "10:00", model.EstadoPendiente),
	)

	s := svc.Stats()
	require.NotEmpty(t, s.PacientesTop)
	assert.Equal(t, PatientCount{Paciente: "Ana Gomez", Cantidad: 2}, s.PacientesTop[0])
}

func TestStatsCached(t *testing.T) {
	citaStore := store.NewCitaStore()
	svc := NewService(citaStore, time.Minute)

	first := svc.Stats()
	citaStore.Add(cita("Ana", "Gomez", "2026-03-02", "09:00", model.EstadoPendiente))

	// Same snapshot until the cache is invalidated.
	assert.Equal(t, first.Total, svc.Stats().Total)

	svc.Invalidate()
	assert.Equal(t, 1, svc.Stats().Total)
}
