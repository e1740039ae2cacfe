package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	"github.com/danidevdc/calendar-citas-app/internal/store"
)

const (
	cacheKey = "stats"
	topN     = 10
)

type MonthCount struct {
	Mes      string `json:"mes"`
	Cantidad int    `json:"cantidad"`
}

type HourCount struct {
	Hora     string `json:"hora"`
	Cantidad int    `json:"cantidad"`
}

type PatientCount struct {
	Paciente string `json:"paciente"`
	Cantidad int    `json:"cantidad"`
}

type Stats struct {
	Total             int            `json:"total"`
	Pendientes        int            `json:"pendientes"`
	Asistieron        int            `json:"asistieron"`
	NoAsistieron      int            `json:"no_asistieron"`
	Reprogramaron     int            `json:"reprogramaron"`
	PorMes            []MonthCount   `json:"por_mes"`
	HorasMasOcupadas  []HourCount    `json:"horas_mas_ocupadas"`
	TasaAsistencia    int            `json:"tasa_asistencia"`
	PacientesTop      []PatientCount `json:"pacientes_frecuentes"`
	GeneradoTimestamp time.Time      `json:"generado"`
}

// Service derives reporting figures from the cita store. Results are cached
// briefly: the dashboard polls these on every view switch.
type Service struct {
	store *store.CitaStore
	cache *cache.Cache

	// Now is swappable so tests can pin "today" for the attendance rate.
	Now func() time.Time
}

func NewService(citaStore *store.CitaStore, ttl time.Duration) *Service {
	return &Service{
		store: citaStore,
		cache: cache.New(ttl, 2*ttl),
		Now:   time.Now,
	}
}

func (s *Service) Stats() *Stats {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*Stats)
	}

	citas := s.store.List()
	stats := &Stats{
		Total:             len(citas),
		PorMes:            citasPorMes(citas),
		HorasMasOcupadas:  horasMasOcupadas(citas),
		TasaAsistencia:    s.tasaAsistencia(citas),
		PacientesTop:      pacientesFrecuentes(citas),
		GeneradoTimestamp: s.Now(),
	}
	for _, c := range citas {
		switch c.Estado {
		case model.EstadoAsistio:
			stats.Asistieron++
		case model.EstadoNoAsistio:
			stats.NoAsistieron++
		case model.EstadoReprogramo:
			stats.Reprogramaron++
		default:
			stats.Pendientes++
		}
	}

	s.cache.SetDefault(cacheKey, stats)
	return stats
}

// Invalidate drops the cached figures after a mutation.
func (s *Service) Invalidate() {
	s.cache.Delete(cacheKey)
}

func citasPorMes(citas []*model.Cita) []MonthCount {
	porMes := make(map[string]int)
	for _, c := range citas {
		if len(c.Fecha) < 7 {
			continue
		}
		porMes[c.Fecha[:7]]++
	}

	out := make([]MonthCount, 0, len(porMes))
	for mes, n := range porMes {
		out = append(out, MonthCount{Mes: mes, Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mes < out[j].Mes })
	return out
}

func horasMasOcupadas(citas []*model.Cita) []HourCount {
	porHora := make(map[string]int)
	for _, c := range citas {
		if len(c.Hora) < 2 {
			continue
		}
		porHora[c.Hora[:2]]++
	}

	out := make([]HourCount, 0, len(porHora))
	for hora, n := range porHora {
		out = append(out, HourCount{Hora: fmt.Sprintf("%s:00", hora), Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Hora < out[j].Hora
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

// tasaAsistencia is the attended share of past citas whose outcome was
// confirmed either way, as a whole percentage.
func (s *Service) tasaAsistencia(citas []*model.Cita) int {
	today := s.Now().Format("2006-01-02")

	var confirmed, attended int
	for _, c := range citas {
		if c.Fecha == "" || c.Fecha >= today {
			continue
		}
		switch c.Estado {
		case model.EstadoAsistio:
			confirmed++
			attended++
		case model.EstadoNoAsistio:
			confirmed++
		}
	}
	if confirmed == 0 {
		return 0
	}
	return int(float64(attended)/float64(confirmed)*100 + 0.5)
}

func pacientesFrecuentes(citas []*model.Cita) []PatientCount {
	porPaciente := make(map[string]int)
	for _, c := range citas {
		if c.Paciente == "" {
			continue
		}
		porPaciente[c.FullName()]++
	}

	out := make([]PatientCount, 0, len(porPaciente))
	for p, n := range porPaciente {
		out = append(out, PatientCount{Paciente: p, Cantidad: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cantidad != out[j].Cantidad {
			return out[i].Cantidad > out[j].Cantidad
		}
		return out[i].Paciente < out[j].Paciente
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
