package calendar

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danidevdc/calendar-citas-app/internal/model"
)

// ToCalendarEvents maps citas to the event objects the calendar widget
// renders. Citas missing or carrying an unparseable fecha/hora are logged
// and skipped; one bad record never fails the batch.
func ToCalendarEvents(citas []*model.Cita) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(citas))
	for _, c := range citas {
		if c.Fecha == "" || c.Hora == "" {
			log.Warn().Str("cita_id", c.ID).Msg("cita without fecha/hora skipped")
			continue
		}
		start, err := c.StartTime()
		if err != nil {
			log.Warn().Str("cita_id", c.ID).Str("fecha", c.Fecha).Str("hora", c.Hora).
				Msg("cita with invalid fecha/hora skipped")
			continue
		}
		end := start.Add(time.Duration(c.DuracionOrDefault()) * time.Minute)

		events = append(events, model.CalendarEvent{
			ID:    c.ID,
			Title: fmt.Sprintf("%s (%s)", c.FullName(), model.LabelForEstado(c.Estado)),
			Start: start,
			End:   end,
			Color: model.ColorForEstado(c.Estado),
		})
	}
	return events
}

// EventsInRange projects only the citas whose start falls in [from, to).
// Zero bounds disable that side of the filter.
func EventsInRange(citas []*model.Cita, from, to time.Time) []model.CalendarEvent {
	events := ToCalendarEvents(citas)
	if from.IsZero() && to.IsZero() {
		return events
	}
	filtered := events[:0]
	for _, e := range events {
		if !from.IsZero() && e.Start.Before(from) {
			continue
		}
		if !to.IsZero() && !e.Start.Before(to) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
