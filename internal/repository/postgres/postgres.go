package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/danidevdc/calendar-citas-app/internal/repository"
)

type citaRepository struct {
	db *sqlx.DB
}

type holidayRepository struct {
	db *sqlx.DB
}

func NewCitaRepository(db *sqlx.DB) repository.CitaRepository {
	return &citaRepository{db: db}
}

func NewHolidayRepository(db *sqlx.DB) repository.HolidayRepository {
	return &holidayRepository{db: db}
}
