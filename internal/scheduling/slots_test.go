package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danidevdc/calendar-citas-app/internal/model"
)

func testCita(id, fecha, hora string, duracion int) *model.Cita {
	return &model.Cita{
		ID:       id,
		Paciente: "Ana",
		Apellido: "Gomez",
		Carrera:  "Sistemas",
		Fecha:    fecha,
		Hora:     hora,
		Duracion: duracion,
		Estado:   model.EstadoPendiente,
	}
}

func TestNewSlotModel(t *testing.T) {
	_, err := NewSlotModel(SlotConfig{WorkStart: "08:00", WorkEnd: "17:00", SlotStep: 30})
	require.NoError(t, err)

	_, err = NewSlotModel(SlotConfig{WorkStart: "17:00", WorkEnd: "08:00", SlotStep: 30})
	assert.Error(t, err)

	_, err = NewSlotModel(SlotConfig{WorkStart: "08:00", WorkEnd: "17:00", SlotStep: 0})
	assert.Error(t, err)

	_, err = NewSlotModel(SlotConfig{WorkStart: "bogus", WorkEnd: "17:00", SlotStep: 30})
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	grid := m.Grid()

	require.Len(t, grid, 18)
	assert.Equal(t, "08:00", grid[0])
	assert.Equal(t, "16:30", grid[17])
}

func TestOccupiedSlots(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{
		testCita("a", day, "09:00", 45),
		testCita("b", day, "11:00", 90),
		testCita("other-day", "2026-03-03", "09:00", 45),
	}

	occupied := m.OccupiedSlots(day, citas)

	// 45 minutes from 09:00 covers two half-hour marks.
	assert.True(t, occupied["09:00"])
	assert.True(t, occupied["09:30"])
	assert.False(t, occupied["10:00"])

	// 90 minutes covers three.
	assert.True(t, occupied["11:00"])
	assert.True(t, occupied["11:30"])
	assert.True(t, occupied["12:00"])
	assert.False(t, occupied["12:30"])

	// Another day's citas never leak in.
	assert.Len(t, occupied, 5)
}

func TestOccupiedSlotsNonAlignedStart(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{testCita("a", day, "09:15", 30)}
	occupied := m.OccupiedSlots(day, citas)

	// The slot set steps from the cita's own start minute.
	assert.True(t, occupied["09:15"])
	assert.False(t, occupied["09:00"])
	assert.False(t, occupied["09:30"])
	assert.Len(t, occupied, 1)
}

func TestOccupiedSlotsSkipsUnparseableHora(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{
		testCita("bad", day, "not-a-time", 45),
		testCita("good", day, "10:00", 30),
	}

	occupied := m.OccupiedSlots(day, citas)
	assert.Equal(t, map[string]bool{"10:00": true}, occupied)
}

func TestOccupiedSlotsDefaultDuracion(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{testCita("a", day, "09:00", 0)}
	occupied := m.OccupiedSlots(day, citas)

	// Zero duration falls back to the 45-minute default.
	assert.True(t, occupied["09:00"])
	assert.True(t, occupied["09:30"])
	assert.Len(t, occupied, 2)
}

func TestFirstAvailableSlot(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	assert.Equal(t, "08:00", m.FirstAvailableSlot(day, nil))

	citas := []*model.Cita{
		testCita("a", day, "08:00", 30),
		testCita("b", day, "08:30", 45),
	}
	assert.Equal(t, "09:30", m.FirstAvailableSlot(day, citas))
}

func TestFirstAvailableSlotFullyBooked(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	var citas []*model.Cita
	for _, slot := range m.Grid() {
		citas = append(citas, testCita(slot, day, slot, 30))
	}

	require.True(t, m.IsDayFullyBooked(day, citas))
	// Falls back to the first grid slot as a form default.
	assert.Equal(t, "08:00", m.FirstAvailableSlot(day, citas))
}

func TestIsDayFullyBooked(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	assert.False(t, m.IsDayFullyBooked(day, nil))

	var citas []*model.Cita
	for _, slot := range m.Grid() {
		citas = append(citas, testCita(slot, day, slot, 30))
	}
	assert.True(t, m.IsDayFullyBooked(day, citas))

	// One free slot is enough to keep the day open.
	assert.False(t, m.IsDayFullyBooked(day, citas[1:]))
}

func TestIsWindowAvailable(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{testCita("a", day, "09:00", 45)}

	// Requests landing on the occupied marks are rejected.
	assert.False(t, m.IsWindowAvailable(day, "09:00", 30, citas, ""))
	assert.False(t, m.IsWindowAvailable(day, "09:30", 45, citas, ""))

	// Window marks step from the request's own start minute, so
	// non-aligned windows are compared on their own boundaries.
	assert.True(t, m.IsWindowAvailable(day, "09:45", 15, citas, ""))

	assert.True(t, m.IsWindowAvailable(day, "10:00", 45, citas, ""))
	assert.False(t, m.IsWindowAvailable(day, "bogus", 45, citas, ""))
}

func TestIsWindowAvailableExcludesEditedCita(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{
		testCita("editing", day, "09:00", 45),
		testCita("other", day, "11:00", 45),
	}

	// Moving the edited cita within its own window is fine once its
	// slots are excluded.
	assert.False(t, m.IsWindowAvailable(day, "09:30", 30, citas, ""))
	assert.True(t, m.IsWindowAvailable(day, "09:30", 30, citas, "editing"))

	// It still cannot land on someone else's slots.
	assert.False(t, m.IsWindowAvailable(day, "11:00", 30, citas, "editing"))
}

func TestOccupiedSlotList(t *testing.T) {
	m := MustSlotModel(DefaultSlotConfig())
	day := "2026-03-02"

	citas := []*model.Cita{
		testCita("b", day, "11:00", 30),
		testCita("a", day, "09:00", 45),
	}

	assert.Equal(t, []string{"09:00", "09:30", "11:00"}, m.OccupiedSlotList(day, citas))
}
