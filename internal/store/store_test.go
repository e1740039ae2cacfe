package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

func cita(id, fecha, hora string, ts int64) *model.Cita {
	return &model.Cita{
		ID:        id,
		Paciente:  "Luis",
		Fecha:     fecha,
		Hora:      hora,
		Duracion:  45,
		Estado:    model.EstadoPendiente,
		Timestamp: ts,
	}
}

func TestListSorted(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("c", "2026-03-03", "08:00", 3))
	s.Add(cita("b", "2026-03-02", "10:00", 2))
	s.Add(cita("a", "2026-03-02", "09:00", 1))
	s.Add(cita("a2", "2026-03-02", "09:00", 0))

	list := s.List()
	require.Len(t, list, 4)
	assert.Equal(t, "a2", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, "b", list[2].ID)
	assert.Equal(t, "c", list[3].ID)
}

func TestListReturnsCopy(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))

	list := s.List()
	list[0] = cita("mutated", "2026-03-02", "09:00", 1)

	fresh := s.List()
	assert.Equal(t, "a", fresh[0].ID)
}

func TestListByDate(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))
	s.Add(cita("b", "2026-03-03", "09:00", 2))

	assert.Len(t, s.ListByDate("2026-03-02"), 1)
	assert.Empty(t, s.ListByDate("2026-03-04"))
}

func TestGet(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))

	c, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "09:00", c.Hora)

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestReplace(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))

	require.NoError(t, s.Replace("a", cita("a", "2026-03-02", "11:00", 1)))
	c, _ := s.Get("a")
	assert.Equal(t, "11:00", c.Hora)

	err := s.Replace("missing", cita("missing", "2026-03-02", "11:00", 1))
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestRemoveByID(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))
	s.Add(cita("b", "2026-03-02", "10:00", 2))

	require.NoError(t, s.RemoveByID("a"))
	assert.Equal(t, 1, s.Len())

	err := s.RemoveByID("a")
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestReplaceAll(t *testing.T) {
	s := NewCitaStore()
	s.Add(cita("a", "2026-03-02", "09:00", 1))

	s.ReplaceAll([]*model.Cita{
		cita("x", "2026-03-05", "08:00", 5),
		cita("y", "2026-03-05", "08:30", 6),
	})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}
