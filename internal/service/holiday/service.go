package holiday

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/danidevdc/calendar-citas-app/internal/holiday"
	"github.com/danidevdc/calendar-citas-app/internal/model"
	"github.com/danidevdc/calendar-citas-app/internal/repository"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

// Service keeps the oracle and the persisted rule set in step. The oracle
// answers lookups; this service owns mutations.
type Service struct {
	oracle *holiday.Oracle
	repo   repository.HolidayRepository
}

func NewService(oracle *holiday.Oracle, repo repository.HolidayRepository) *Service {
	return &Service{oracle: oracle, repo: repo}
}

// Load pulls persisted rules into the oracle. An empty backend gets the
// default rules seeded, first-run behaviour.
func (s *Service) Load(ctx context.Context) error {
	rules, err := s.repo.LoadAll(ctx)
	if err != nil {
		return apperrors.Persistence(err)
	}

	if len(rules) == 0 {
		rules = holiday.DefaultRules()
		for _, r := range rules {
			if err := s.repo.Create(ctx, r); err != nil {
				log.Warn().Err(err).Str("date_key", r.DateKey).Msg("failed to seed default holiday")
			}
		}
		log.Info().Int("count", len(rules)).Msg("seeded default holidays")
	}

	s.oracle.ReplaceAll(rules)
	return nil
}

func (s *Service) List() []model.HolidayRule {
	return s.oracle.List()
}

func (s *Service) Add(ctx context.Context, req *model.CreateHolidayRequest) (model.HolidayRule, error) {
	rule, err := s.oracle.Add(req.Fecha, req.Name, req.Recurring)
	if err != nil {
		return model.HolidayRule{}, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		// Roll the oracle back so memory and backend stay consistent.
		if rmErr := s.oracle.Remove(rule.DateKey); rmErr != nil {
			log.Warn().Err(rmErr).Str("date_key", rule.DateKey).Msg("failed to roll back holiday rule")
		}
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			return model.HolidayRule{}, err
		}
		return model.HolidayRule{}, apperrors.Persistence(err)
	}
	return rule, nil
}

func (s *Service) Remove(ctx context.Context, dateKey string) error {
	if err := s.repo.Delete(ctx, dateKey); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.Persistence(err)
	}
	return s.oracle.Remove(dateKey)
}
