package model

import (
	"fmt"
	"strings"
	"time"
)

type CitaEstado string

const (
	EstadoPendiente  CitaEstado = "pendiente"
	EstadoAsistio    CitaEstado = "asistio"
	EstadoNoAsistio  CitaEstado = "no-asistio"
	EstadoReprogramo CitaEstado = "reprogramo"
)

const DefaultDuracion = 45

// Cita is an appointment on the operator's calendar. Fecha and Hora are kept
// as the wire strings ("2006-01-02", "15:04") because the slot grid works on
// clock strings, not instants.
type Cita struct {
	ID        string     `db:"id" json:"id"`
	Paciente  string     `db:"paciente" json:"paciente"`
	Apellido  string     `db:"apellido" json:"apellido,omitempty"`
	Carrera   string     `db:"carrera" json:"carrera"`
	Fecha     string     `db:"fecha" json:"fecha"`
	Hora      string     `db:"hora" json:"hora"`
	Duracion  int        `db:"duracion" json:"duracion"`
	Estado    CitaEstado `db:"estado" json:"estado"`
	Notas     string     `db:"notas" json:"notas,omitempty"`
	Timestamp int64      `db:"timestamp" json:"timestamp"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last name the way the calendar displays it.
func (c *Cita) FullName() string {
	if c.Apellido == "" {
		return c.Paciente
	}
	return c.Paciente + " " + c.Apellido
}

// StartTime combines Fecha and Hora into a local instant.
func (c *Cita) StartTime() (time.Time, error) {
	return ParseFechaHora(c.Fecha, c.Hora)
}

// DuracionOrDefault guards against rows that lost their duration.
func (c *Cita) DuracionOrDefault() int {
	if c.Duracion <= 0 {
		return DefaultDuracion
	}
	return c.Duracion
}

// ParseFechaHora parses a "2006-01-02" date plus "15:04" clock time in the
// local timezone. Single-digit hours ("9:30") are accepted, matching what
// the persistence backends hand back.
func ParseFechaHora(fecha, hora string) (time.Time, error) {
	if fecha == "" || hora == "" {
		return time.Time{}, fmt.Errorf("empty fecha or hora")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", fecha+" "+hora, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid fecha/hora %q %q: %w", fecha, hora, err)
	}
	return t, nil
}

// SplitFullName divides a free-text full name at the first space: first word
// is the given name, the rest the surname(s).
func SplitFullName(full string) (paciente, apellido string) {
	parts := strings.Fields(strings.TrimSpace(full))
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

type CreateCitaRequest struct {
	NombreCompleto string     `json:"nombre_completo" binding:"required"`
	Carrera        string     `json:"carrera" binding:"required"`
	Fecha          string     `json:"fecha" binding:"required,fecha"`
	Hora           string     `json:"hora" binding:"required,hora"`
	Duracion       int        `json:"duracion" binding:"omitempty,min=1,max=480"`
	Estado         CitaEstado `json:"estado" binding:"omitempty,oneof=pendiente asistio no-asistio reprogramo"`
	Notas          string     `json:"notas"`
}

type UpdateCitaRequest struct {
	NombreCompleto *string     `json:"nombre_completo"`
	Carrera        *string     `json:"carrera"`
	Fecha          *string     `json:"fecha"`
	Hora           *string     `json:"hora"`
	Duracion       *int        `json:"duracion"`
	Estado         *CitaEstado `json:"estado"`
	Notas          *string     `json:"notas"`
}

type CitaFilters struct {
	Fecha     string
	Estado    CitaEstado
	StartDate string
	EndDate   string
}
