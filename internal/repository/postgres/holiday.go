package postgres

import (
	"context"
	"fmt"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

func (r *holidayRepository) LoadAll(ctx context.Context) ([]model.HolidayRule, error) {
	query := `
		SELECT date_key, name, recurring
		FROM holidays
		ORDER BY date_key ASC
	`
	var rules []model.HolidayRule
	if err := r.db.SelectContext(ctx, &rules, query); err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}
	return rules, nil
}

func (r *holidayRepository) Create(ctx context.Context, rule model.HolidayRule) error {
	query := `
		INSERT INTO holidays (date_key, name, recurring)
		VALUES ($1, $2, $3)
		ON CONFLICT (date_key) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, rule.DateKey, rule.Name, rule.Recurring)
	if err != nil {
		return fmt.Errorf("failed to create holiday: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.AlreadyExists("holiday rule")
	}
	return nil
}

func (r *holidayRepository) Delete(ctx context.Context, dateKey string) error {
	query := `
		DELETE FROM holidays
		WHERE date_key = $1
	`
	result, err := r.db.ExecContext(ctx, query, dateKey)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("holiday rule")
	}
	return nil
}
