package store

import (
	"sort"
	"sync"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

// CitaStore is the in-memory source of truth the slot model and calendar
// read from. It performs no validation; the cita service is the only caller
// and mutates it only after the persistence backend has accepted the change.
type CitaStore struct {
	mu    sync.RWMutex
	citas []*model.Cita
}

func NewCitaStore() *CitaStore {
	return &CitaStore{}
}

// List returns a copy sorted by fecha then hora ascending, with the creation
// timestamp breaking ties.
func (s *CitaStore) List() []*model.Cita {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Cita, len(s.citas))
	copy(out, s.citas)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha < out[j].Fecha
		}
		if out[i].Hora != out[j].Hora {
			return out[i].Hora < out[j].Hora
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// ListByDate returns the citas on one fecha, unordered.
func (s *CitaStore) ListByDate(fecha string) []*model.Cita {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Cita
	for _, c := range s.citas {
		if c.Fecha == fecha {
			out = append(out, c)
		}
	}
	return out
}

func (s *CitaStore) Get(id string) (*model.Cita, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.citas {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (s *CitaStore) Add(c *model.Cita) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.citas = append(s.citas, c)
}

func (s *CitaStore) Replace(id string, c *model.Cita) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.citas {
		if existing.ID == id {
			s.citas[i] = c
			return nil
		}
	}
	return apperrors.NotFound("cita")
}

func (s *CitaStore) RemoveByID(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.citas {
		if existing.ID == id {
			s.citas = append(s.citas[:i], s.citas[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("cita")
}

// ReplaceAll swaps in a freshly loaded snapshot. Last write wins: a stale
// sync response simply overwrites whatever is in memory.
func (s *CitaStore) ReplaceAll(citas []*model.Cita) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.citas = citas
}

func (s *CitaStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.citas)
}
