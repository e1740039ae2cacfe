package model

// HolidayRule marks a non-working day. DateKey is either a full "2006-01-02"
// date for a one-off closure or "01-02" (month-day) for a yearly repeat.
type HolidayRule struct {
	DateKey   string `db:"date_key" json:"date_key"`
	Name      string `db:"name" json:"name"`
	Recurring bool   `db:"recurring" json:"recurring"`
}

type CreateHolidayRequest struct {
	Fecha     string `json:"fecha" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Recurring bool   `json:"recurring"`
}
