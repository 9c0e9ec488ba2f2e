package models

import "time"

// DateMode точность хранения даты
type DateMode int16

const (
	DateFull      DateMode = 0
	DateYearOnly  DateMode = 1
	DateYearMonth DateMode = 2
)

func (m DateMode) Valid() bool {
	return m >= DateFull && m <= DateYearMonth
}

// Layout возвращает формат вывода даты для режима
func (m DateMode) Layout() string {
	switch m {
	case DateYearOnly:
		return "2006"
	case DateYearMonth:
		return "01.2006"
	default:
		return "02.01.2006"
	}
}

// PartialDate дата, известная с точностью до дня, месяца или года
type PartialDate struct {
	Date *time.Time
	Mode DateMode
}

func (d PartialDate) Known() bool {
	return d.Date != nil
}

// Format возвращает nil, если дата неизвестна
func (d PartialDate) Format() *string {
	if d.Date == nil {
		return nil
	}
	s := d.Date.Format(d.Mode.Layout())
	return &s
}
