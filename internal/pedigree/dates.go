package pedigree

import (
	"time"

	"equestrian/internal/domain/models"
)

// CompareDates сравнивает две частично известные даты с точностью более грубой из двух.
// ok == false, если хотя бы одна дата неизвестна: в этом случае проверка не выполняется.
func CompareDates(a, b models.PartialDate) (cmp int, ok bool) {
	if !a.Known() || !b.Known() {
		return 0, false
	}

	x, y := truncate(*a.Date, a.Mode, b.Mode), truncate(*b.Date, a.Mode, b.Mode)

	switch {
	case x.Before(y):
		return -1, true
	case x.After(y):
		return 1, true
	default:
		return 0, true
	}
}

func truncate(t time.Time, a, b models.DateMode) time.Time {
	y, m, d := t.Date()

	switch {
	case a == models.DateYearOnly || b == models.DateYearOnly:
		m, d = time.January, 1
	case a == models.DateYearMonth || b == models.DateYearMonth:
		d = 1
	}

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
