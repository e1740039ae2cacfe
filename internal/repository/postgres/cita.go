package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

func (r *citaRepository) LoadAll(ctx context.Context) ([]*model.Cita, error) {
	query := `
		SELECT id, paciente, apellido, carrera, fecha, hora,
			   duracion, estado, notas, timestamp,
			   created_at, updated_at
		FROM citas
		ORDER BY fecha ASC, hora ASC
	`
	var citas []*model.Cita
	if err := r.db.SelectContext(ctx, &citas, query); err != nil {
		return nil, fmt.Errorf("failed to load citas: %w", err)
	}
	return citas, nil
}

func (r *citaRepository) Create(ctx context.Context, cita *model.Cita) (*model.Cita, error) {
	query := `
		INSERT INTO citas (
			id, paciente, apellido, carrera, fecha, hora,
			duracion, estado, notas, timestamp,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	if cita.ID == "" {
		cita.ID = uuid.New().String()
	}
	cita.CreatedAt = time.Now()
	cita.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		cita.ID,
		cita.Paciente,
		cita.Apellido,
		cita.Carrera,
		cita.Fecha,
		cita.Hora,
		cita.Duracion,
		cita.Estado,
		cita.Notas,
		cita.Timestamp,
		cita.CreatedAt,
		cita.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cita: %w", err)
	}
	return cita, nil
}

func (r *citaRepository) Update(ctx context.Context, id string, cita *model.Cita) (*model.Cita, error) {
	query := `
		UPDATE citas
		SET paciente = $1, apellido = $2, carrera = $3, fecha = $4,
			hora = $5, duracion = $6, estado = $7, notas = $8, updated_at = $9
		WHERE id = $10
	`
	cita.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		cita.Paciente,
		cita.Apellido,
		cita.Carrera,
		cita.Fecha,
		cita.Hora,
		cita.Duracion,
		cita.Estado,
		cita.Notas,
		cita.UpdatedAt,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update cita: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.NotFound("cita")
	}

	cita.ID = id
	return cita, nil
}

func (r *citaRepository) Delete(ctx context.Context, id string) error {
	query := `
		DELETE FROM citas
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete cita: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("cita")
	}

	return nil
}
