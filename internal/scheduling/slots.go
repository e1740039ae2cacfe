package scheduling

import (
	"fmt"
	"sort"

	"github.com/danidevdc/calendar-citas-app/internal/model"
)

// SlotConfig describes the working-day grid. Constant for a deployment.
type SlotConfig struct {
	WorkStart string `mapstructure:"work_start"`
	WorkEnd   string `mapstructure:"work_end"`
	SlotStep  int    `mapstructure:"slot_step"`
}

func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		WorkStart: "08:00",
		WorkEnd:   "17:00",
		SlotStep:  30,
	}
}

// SlotModel derives occupied half-hour slots from the citas of a single day.
// All methods are pure functions of (fecha, citas); the model holds no state
// beyond its grid configuration.
type SlotModel struct {
	cfg       SlotConfig
	startMins int
	endMins   int
}

func NewSlotModel(cfg SlotConfig) (*SlotModel, error) {
	start, err := parseClock(cfg.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("invalid work_start: %w", err)
	}
	end, err := parseClock(cfg.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid work_end: %w", err)
	}
	if cfg.SlotStep <= 0 {
		return nil, fmt.Errorf("slot_step must be positive, got %d", cfg.SlotStep)
	}
	if end <= start {
		return nil, fmt.Errorf("work_end %s not after work_start %s", cfg.WorkEnd, cfg.WorkStart)
	}
	return &SlotModel{cfg: cfg, startMins: start, endMins: end}, nil
}

func MustSlotModel(cfg SlotConfig) *SlotModel {
	m, err := NewSlotModel(cfg)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *SlotModel) Config() SlotConfig { return m.cfg }

// Grid returns every slot start of the working day, ordered.
func (m *SlotModel) Grid() []string {
	var grid []string
	for t := m.startMins; t < m.endMins; t += m.cfg.SlotStep {
		grid = append(grid, formatClock(t))
	}
	return grid
}

// OccupiedSlots collects the grid timestamps covered by the day's citas.
// A cita occupies every step-aligned timestamp t with start <= t < start+dur,
// stepped from its own start minute. Citas with an unparseable hora are
// skipped rather than failing the whole computation.
func (m *SlotModel) OccupiedSlots(fecha string, citas []*model.Cita) map[string]bool {
	return m.occupiedSlotsExcluding(fecha, citas, "")
}

func (m *SlotModel) occupiedSlotsExcluding(fecha string, citas []*model.Cita, excludeID string) map[string]bool {
	occupied := make(map[string]bool)
	for _, c := range citas {
		if c.Fecha != fecha {
			continue
		}
		if excludeID != "" && c.ID == excludeID {
			continue
		}
		start, err := parseClock(c.Hora)
		if err != nil {
			continue
		}
		for _, s := range windowSlots(start, c.DuracionOrDefault(), m.cfg.SlotStep) {
			occupied[s] = true
		}
	}
	return occupied
}

// OccupiedSlotList is OccupiedSlots as a sorted slice, for API responses.
func (m *SlotModel) OccupiedSlotList(fecha string, citas []*model.Cita) []string {
	occupied := m.OccupiedSlots(fecha, citas)
	out := make([]string, 0, len(occupied))
	for s := range occupied {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// FirstAvailableSlot returns the first free grid slot. When the day is fully
// booked it still returns the grid's first slot: a form default, not a
// promise, and the validator re-checks before committing.
func (m *SlotModel) FirstAvailableSlot(fecha string, citas []*model.Cita) string {
	occupied := m.OccupiedSlots(fecha, citas)
	grid := m.Grid()
	for _, slot := range grid {
		if !occupied[slot] {
			return slot
		}
	}
	return grid[0]
}

// IsDayFullyBooked reports whether every grid slot is occupied. Slots outside
// working hours may appear in OccupiedSlots but are not compared here.
func (m *SlotModel) IsDayFullyBooked(fecha string, citas []*model.Cita) bool {
	occupied := m.OccupiedSlots(fecha, citas)
	for _, slot := range m.Grid() {
		if !occupied[slot] {
			return false
		}
	}
	return true
}

// IsWindowAvailable checks a requested (hora, duracion) window against the
// day's occupancy. The window's slot set steps from its own start minute, so
// a non-grid-aligned request is compared on its own boundaries. excludeID
// lets an edit keep its current slot legal.
func (m *SlotModel) IsWindowAvailable(fecha, hora string, duracion int, citas []*model.Cita, excludeID string) bool {
	start, err := parseClock(hora)
	if err != nil {
		return false
	}
	if duracion <= 0 {
		duracion = model.DefaultDuracion
	}
	occupied := m.occupiedSlotsExcluding(fecha, citas, excludeID)
	for _, s := range windowSlots(start, duracion, m.cfg.SlotStep) {
		if occupied[s] {
			return false
		}
	}
	return true
}

// windowSlots expands [start, start+duracion) into step-spaced timestamps.
func windowSlots(startMins, duracion, step int) []string {
	var slots []string
	for t := startMins; t < startMins+duracion; t += step {
		slots = append(slots, formatClock(t))
	}
	return slots
}

func parseClock(hora string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(hora, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", hora, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", hora)
	}
	return h*60 + m, nil
}

func formatClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
