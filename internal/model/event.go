package model

import "time"

// CalendarEvent is the shape the calendar widget consumes.
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Color string    `json:"color"`
}

var estadoColors = map[CitaEstado]string{
	EstadoPendiente:  "#667eea",
	EstadoAsistio:    "#4ade80",
	EstadoNoAsistio:  "#f87171",
	EstadoReprogramo: "#fbbf24",
}

var estadoLabels = map[CitaEstado]string{
	EstadoPendiente:  "Pendiente",
	EstadoAsistio:    "Asistió",
	EstadoNoAsistio:  "No Asistió",
	EstadoReprogramo: "Reprogramó",
}

// ColorForEstado falls back to the pendiente color for unknown states.
func ColorForEstado(e CitaEstado) string {
	if c, ok := estadoColors[e]; ok {
		return c
	}
	return estadoColors[EstadoPendiente]
}

func LabelForEstado(e CitaEstado) string {
	if l, ok := estadoLabels[e]; ok {
		return l
	}
	return estadoLabels[EstadoPendiente]
}
