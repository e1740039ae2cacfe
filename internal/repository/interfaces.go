package repository

import (
	"context"

	"github.com/danidevdc/calendar-citas-app/internal/model"
)

type (
	// CitaRepository is the persistence collaborator behind the in-memory
	// store. LoadAll may return raw rows the caller must filter; Create,
	// Update and Delete report the saved record so the caller can mirror
	// the backend's view locally.
	CitaRepository interface {
		LoadAll(ctx context.Context) ([]*model.Cita, error)
		Create(ctx context.Context, cita *model.Cita) (*model.Cita, error)
		Update(ctx context.Context, id string, cita *model.Cita) (*model.Cita, error)
		Delete(ctx context.Context, id string) error
	}

	// HolidayRepository persists the oracle's rule set.
	HolidayRepository interface {
		LoadAll(ctx context.Context) ([]model.HolidayRule, error)
		Create(ctx context.Context, rule model.HolidayRule) error
		Delete(ctx context.Context, dateKey string) error
	}
)
