package scheduling

import (
	"fmt"
	"time"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

// HolidayOracle is what the validator needs from the holiday side. The
// validator always holds one; use NoopOracle when holidays are not in play.
type HolidayOracle interface {
	IsHoliday(fecha string) bool
	HolidayName(fecha string) string
}

// NoopOracle never reports a holiday.
type NoopOracle struct{}

func (NoopOracle) IsHoliday(string) bool     { return false }
func (NoopOracle) HolidayName(string) string { return "" }

// Decision is the outcome of validating a prospective cita. Rejections carry
// the reason code and a message fit for the operator's toast.
type Decision struct {
	Accepted bool
	Reason   apperrors.ErrorCode
	Message  string
}

func accepted() Decision {
	return Decision{Accepted: true}
}

func rejected(reason apperrors.ErrorCode, message string) Decision {
	return Decision{Reason: reason, Message: message}
}

// Err converts a rejection into the matching AppError, nil when accepted.
func (d Decision) Err() error {
	if d.Accepted {
		return nil
	}
	return apperrors.New(d.Reason, d.Message)
}

// Request is a prospective booking. Editing is non-nil when the request
// comes from editing an existing cita.
type Request struct {
	Fecha    string
	Hora     string
	Duracion int
	Editing  *model.Cita
}

// Validator runs the full accept/reject decision for a booking request. It
// is a pure decision function: the caller mutates the store and calls the
// persistence backend only after an accept.
type Validator struct {
	slots    *SlotModel
	holidays HolidayOracle

	// Now is swappable so tests can pin the clock.
	Now func() time.Time
}

func NewValidator(slots *SlotModel, holidays HolidayOracle) *Validator {
	if holidays == nil {
		holidays = NoopOracle{}
	}
	return &Validator{slots: slots, holidays: holidays, Now: time.Now}
}

// Validate checks the request against the given day's citas. Check order is
// fixed: parse, past, holiday, weekend, self-edit, slot conflict. The holiday
// check runs before the weekend check so a holiday on any day rejects with
// the holiday reason.
func (v *Validator) Validate(req Request, citas []*model.Cita) Decision {
	start, err := model.ParseFechaHora(req.Fecha, req.Hora)
	if err != nil {
		return rejected(apperrors.ErrInvalidDateTime, "invalid fecha or hora")
	}

	if start.Before(v.Now()) {
		return rejected(apperrors.ErrInPast, "cannot schedule citas in the past")
	}

	if v.holidays.IsHoliday(req.Fecha) {
		name := v.holidays.HolidayName(req.Fecha)
		return rejected(apperrors.ErrHoliday, fmt.Sprintf("cannot schedule citas on %s", name))
	}

	if wd := start.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return rejected(apperrors.ErrWeekend, "cannot schedule citas on weekends")
	}

	// An edit that keeps its own (fecha, hora) is always slot-legal.
	excludeID := ""
	if req.Editing != nil {
		if req.Editing.Fecha == req.Fecha && req.Editing.Hora == req.Hora {
			return accepted()
		}
		excludeID = req.Editing.ID
	}

	if !v.slots.IsWindowAvailable(req.Fecha, req.Hora, req.Duracion, citas, excludeID) {
		return rejected(apperrors.ErrSlotTaken, "this time is already taken")
	}

	return accepted()
}
