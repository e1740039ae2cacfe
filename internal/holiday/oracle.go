package holiday

import (
	"regexp"
	"sort"
	"sync"

	"github.com/danidevdc/calendar-citas-app/internal/model"
	apperrors "github.com/danidevdc/calendar-citas-app/pkg/errors"
)

const fallbackName = "Día Feriado"

var (
	fullDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthDayRe = regexp.MustCompile(`^\d{2}-\d{2}$`)
)

// Oracle answers whether a calendar date is a non-working day. Rules are
// either one-off full dates or yearly month-day repeats. All failures are
// local results, never fatal.
type Oracle struct {
	mu    sync.RWMutex
	rules map[string]model.HolidayRule
}

// NewOracle builds an oracle over the given rules. An empty rule set gets
// the seeded defaults, matching first-run behaviour.
func NewOracle(rules []model.HolidayRule) *Oracle {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	o := &Oracle{rules: make(map[string]model.HolidayRule, len(rules))}
	for _, r := range rules {
		o.rules[r.DateKey] = r
	}
	return o
}

// DefaultRules are the closures the calendar shipped with.
func DefaultRules() []model.HolidayRule {
	return []model.HolidayRule{
		{DateKey: "01-01", Name: "Año Nuevo", Recurring: true},
		{DateKey: "02-16", Name: "Carnaval", Recurring: true},
		{DateKey: "02-17", Name: "Carnaval", Recurring: true},
		{DateKey: "05-01", Name: "Día del Trabajo", Recurring: true},
		{DateKey: "12-25", Name: "Navidad", Recurring: true},
	}
}

// IsHoliday matches fecha ("2006-01-02") against full-date rules and its
// month-day projection against recurring rules.
func (o *Oracle) IsHoliday(fecha string) bool {
	if !fullDateRe.MatchString(fecha) {
		return false
	}
	o.mu.RLock()
	defer o.mu.RUnlock()
	if _, ok := o.rules[fecha]; ok {
		return true
	}
	_, ok := o.rules[monthDay(fecha)]
	return ok
}

// HolidayName returns the matching rule's name, a generic label otherwise.
func (o *Oracle) HolidayName(fecha string) string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if r, ok := o.rules[fecha]; ok && r.Name != "" {
		return r.Name
	}
	if fullDateRe.MatchString(fecha) {
		if r, ok := o.rules[monthDay(fecha)]; ok && r.Name != "" {
			return r.Name
		}
	}
	return fallbackName
}

// Add registers a rule. Recurring dates are normalized to their month-day
// key; duplicates on the resulting key are rejected.
func (o *Oracle) Add(fecha, name string, recurring bool) (model.HolidayRule, error) {
	key, err := NormalizeKey(fecha, recurring)
	if err != nil {
		return model.HolidayRule{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.rules[key]; ok {
		return model.HolidayRule{}, apperrors.AlreadyExists("holiday rule")
	}
	rule := model.HolidayRule{DateKey: key, Name: name, Recurring: recurring}
	o.rules[key] = rule
	return rule, nil
}

func (o *Oracle) Remove(dateKey string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.rules[dateKey]; !ok {
		return apperrors.NotFound("holiday rule")
	}
	delete(o.rules, dateKey)
	return nil
}

// List returns the rules ordered by month then day for display.
func (o *Oracle) List() []model.HolidayRule {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]model.HolidayRule, 0, len(o.rules))
	for _, r := range o.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		mi, mj := monthDay(out[i].DateKey), monthDay(out[j].DateKey)
		if mi != mj {
			return mi < mj
		}
		return out[i].DateKey < out[j].DateKey
	})
	return out
}

// ReplaceAll swaps the rule set wholesale, used when reloading from the
// persistence backend.
func (o *Oracle) ReplaceAll(rules []model.HolidayRule) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rules = make(map[string]model.HolidayRule, len(rules))
	for _, r := range rules {
		o.rules[r.DateKey] = r
	}
}

// NormalizeKey validates fecha and derives the stored key: month-day for
// recurring rules, the full date otherwise.
func NormalizeKey(fecha string, recurring bool) (string, error) {
	switch {
	case fullDateRe.MatchString(fecha):
		if recurring {
			return monthDay(fecha), nil
		}
		return fecha, nil
	case monthDayRe.MatchString(fecha):
		// A bare month-day is only meaningful as a yearly repeat.
		return fecha, nil
	default:
		return "", apperrors.New(apperrors.ErrInvalidDateTime, "holiday date must be YYYY-MM-DD or MM-DD")
	}
}

// monthDay projects "2006-01-02" onto "01-02"; month-day keys pass through.
func monthDay(key string) string {
	if len(key) == 10 {
		return key[5:]
	}
	return key
}
