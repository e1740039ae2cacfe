package repository

import (
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/danidevdc/calendar-citas-app/internal/model"
)

var (
	fechaRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	horaRe  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// FilterValidRows drops malformed rows a backend handed back, logging each
// one instead of failing the load. The filter is the same regardless of
// which backend produced the rows.
func FilterValidRows(rows []*model.Cita) []*model.Cita {
	valid := make([]*model.Cita, 0, len(rows))
	for _, c := range rows {
		if !RowIsValid(c) {
			log.Warn().Str("cita_id", c.ID).Str("fecha", c.Fecha).Str("hora", c.Hora).
				Msg("dropping invalid cita row from load")
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// RowIsValid checks the uniform validity rules: well-formed fecha and hora
// that combine into a real instant, and a non-empty patient name.
func RowIsValid(c *model.Cita) bool {
	if c.Paciente == "" || c.Fecha == "" {
		return false
	}
	if !fechaRe.MatchString(c.Fecha) || !horaRe.MatchString(c.Hora) {
		return false
	}
	if _, err := model.ParseFechaHora(c.Fecha, c.Hora); err != nil {
		return false
	}
	return true
}
