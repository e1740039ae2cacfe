package cita

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	"github.com/danidevdc/calendar-citas-app/internal/notifier"
	"github.com/danidevdc/calendar-citas-app/internal/repository"
	"github.com/danidevdc/calendar-citas-app/internal/scheduling"
	"github.com/danidevdc/calendar-citas-app/internal/store"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
	"github.com/danidevdc/calendar-citas-app/pkg/messaging"
	"github.com/danidevdc/calendar-citas-app/pkg/metrics"
)

const eventsChannel = "citas.events"

// StatsInvalidator drops cached reporting figures once the store changes.
type StatsInvalidator interface {
	Invalidate()
}

// Service orchestrates the booking flow: the validator decides, the
// persistence backend commits, and only then does the in-memory store
// change. The store is never mutated on a persistence failure.
type Service struct {
	repo      repository.CitaRepository
	store     *store.CitaStore
	validator *scheduling.Validator
	slots     *scheduling.SlotModel
	broker    messaging.Broker
	notifier  notifier.Notifier
	stats     StatsInvalidator
	metrics   *metrics.Metrics
}

func NewService(
	repo repository.CitaRepository,
	citaStore *store.CitaStore,
	validator *scheduling.Validator,
	slots *scheduling.SlotModel,
	broker messaging.Broker,
	notif notifier.Notifier,
	stats StatsInvalidator,
	m *metrics.Metrics,
) *Service {
	if broker == nil {
		broker = messaging.NoopBroker{}
	}
	if notif == nil {
		notif = notifier.NewNoop()
	}
	return &Service{
		repo:      repo,
		store:     citaStore,
		validator: validator,
		slots:     slots,
		broker:    broker,
		notifier:  notif,
		stats:     stats,
		metrics:   m,
	}
}

// Sync reloads the store from the persistence backend, dropping malformed
// rows. The snapshot is last-write-wins; on failure the store keeps the
// previous snapshot.
func (s *Service) Sync(ctx context.Context) (int, error) {
	started := time.Now()
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.countSync("failure")
		return 0, apperrors.Persistence(err)
	}

	valid := repository.FilterValidRows(rows)
	dropped := len(rows) - len(valid)
	s.store.ReplaceAll(valid)
	s.invalidateStats()

	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues("success").Inc()
		s.metrics.SyncLatency.Observe(time.Since(started).Seconds())
		s.metrics.RowsDropped.Add(float64(dropped))
		s.metrics.CitasInStore.Set(float64(len(valid)))
	}
	log.Info().Int("loaded", len(valid)).Int("dropped", dropped).Msg("citas synced from backend")
	return len(valid), nil
}

func (s *Service) List() []*model.Cita {
	return s.store.List()
}

func (s *Service) Get(id string) (*model.Cita, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("cita")
	}
	return c, nil
}

// Availability is the day view the booking form consumes.
type Availability struct {
	Fecha          string   `json:"fecha"`
	Occupied       []string `json:"occupied"`
	Free           []string `json:"free"`
	FirstAvailable string   `json:"first_available"`
	FullyBooked    bool     `json:"fully_booked"`
}

func (s *Service) Availability(fecha string) Availability {
	citas := s.store.ListByDate(fecha)
	occupied := s.slots.OccupiedSlots(fecha, citas)

	var free []string
	for _, slot := range s.slots.Grid() {
		if !occupied[slot] {
			free = append(free, slot)
		}
	}

	fullyBooked := len(free) == 0
	if fullyBooked && s.metrics != nil {
		s.metrics.FullyBookedChecks.Inc()
	}

	return Availability{
		Fecha:          fecha,
		Occupied:       s.slots.OccupiedSlotList(fecha, citas),
		Free:           free,
		FirstAvailable: s.slots.FirstAvailableSlot(fecha, citas),
		FullyBooked:    fullyBooked,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateCitaRequest) (*model.Cita, error) {
	cita := s.fromCreateRequest(req)

	decision := s.validator.Validate(scheduling.Request{
		Fecha:    cita.Fecha,
		Hora:     cita.Hora,
		Duracion: cita.Duracion,
	}, s.store.ListByDate(cita.Fecha))
	if !decision.Accepted {
		s.countRejection(decision.Reason)
		return nil, decision.Err()
	}

	saved, err := s.repo.Create(ctx, cita)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	s.store.Add(saved)
	s.afterMutation(ctx, "cita_created", saved, s.notifier.CitaCreated)

	if s.metrics != nil {
		s.metrics.BookingsAccepted.Inc()
		s.metrics.CitasInStore.Set(float64(s.store.Len()))
	}
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateCitaRequest) (*model.Cita, error) {
	existing, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("cita")
	}

	updated := applyUpdate(existing, req)

	decision := s.validator.Validate(scheduling.Request{
		Fecha:    updated.Fecha,
		Hora:     updated.Hora,
		Duracion: updated.Duracion,
		Editing:  existing,
	}, s.store.ListByDate(updated.Fecha))
	if !decision.Accepted {
		s.countRejection(decision.Reason)
		return nil, decision.Err()
	}

	saved, err := s.repo.Update(ctx, id, updated)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.Persistence(err)
	}
	if err := s.store.Replace(id, saved); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, "cita_updated", saved, s.notifier.CitaUpdated)
	return saved, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	existing, ok := s.store.Get(id)
	if !ok {
		return apperrors.NotFound("cita")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.Persistence(err)
	}
	if err := s.store.RemoveByID(id); err != nil {
		return err
	}
	s.afterMutation(ctx, "cita_deleted", existing, s.notifier.CitaDeleted)

	if s.metrics != nil {
		s.metrics.CitasInStore.Set(float64(s.store.Len()))
	}
	return nil
}

func (s *Service) fromCreateRequest(req *model.CreateCitaRequest) *model.Cita {
	paciente, apellido := model.SplitFullName(req.NombreCompleto)

	duracion := req.Duracion
	if duracion <= 0 {
		duracion = model.DefaultDuracion
	}
	estado := req.Estado
	if estado == "" {
		estado = model.EstadoPendiente
	}

	return &model.Cita{
		ID:        uuid.New().String(),
		Paciente:  paciente,
		Apellido:  apellido,
		Carrera:   req.Carrera,
		Fecha:     req.Fecha,
		Hora:      req.Hora,
		Duracion:  duracion,
		Estado:    estado,
		Notas:     req.Notas,
		Timestamp: time.Now().UnixMilli(),
	}
}

func applyUpdate(existing *model.Cita, req *model.UpdateCitaRequest) *model.Cita {
	updated := *existing
	if req.NombreCompleto != nil {
		updated.Paciente, updated.Apellido = model.SplitFullName(*req.NombreCompleto)
	}
	if req.Carrera != nil {
		updated.Carrera = *req.Carrera
	}
	if req.Fecha != nil {
		updated.Fecha = *req.Fecha
	}
	if req.Hora != nil {
		updated.Hora = *req.Hora
	}
	if req.Duracion != nil {
		updated.Duracion = *req.Duracion
	}
	if req.Estado != nil {
		updated.Estado = *req.Estado
	}
	if req.Notas != nil {
		updated.Notas = *req.Notas
	}
	return &updated
}

// afterMutation drops the stats cache, publishes the change event and fires
// the notifier. Publish and notify are best effort; the booking already
// committed.
func (s *Service) afterMutation(ctx context.Context, eventType string, cita *model.Cita, notify func(context.Context, *model.Cita) error) {
	s.invalidateStats()

	event := messaging.Event{Type: eventType, CitaID: cita.ID, Data: cita}
	if err := s.broker.Publish(ctx, eventsChannel, event); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to publish cita event")
	}
	if err := notify(ctx, cita); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("failed to send notification")
	}
}

func (s *Service) invalidateStats() {
	if s.stats != nil {
		s.stats.Invalidate()
	}
}

func (s *Service) countRejection(reason apperrors.ErrorCode) {
	if s.metrics != nil {
		s.metrics.BookingsRejected.WithLabelValues(string(reason)).Inc()
	}
}

func (s *Service) countSync(result string) {
	if s.metrics != nil {
		s.metrics.SyncRuns.WithLabelValues(result).Inc()
	}
}
