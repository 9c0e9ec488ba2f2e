package pedigree

import (
	"testing"
	"time"

	"equestrian/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCompareDates(t *testing.T) {
	tests := []struct {
		name    string
		a, b    models.PartialDate
		wantCmp int
		wantOK  bool
	}{
		{
			name:   "unknown left",
			a:      models.PartialDate{},
			b:      models.PartialDate{Date: date(2020, 1, 1)},
			wantOK: false,
		},
		{
			name:   "unknown right",
			a:      models.PartialDate{Date: date(2020, 1, 1)},
			b:      models.PartialDate{},
			wantOK: false,
		},
		{
			name:    "full dates, earlier",
			a:       models.PartialDate{Date: date(2020, 3, 1)},
			b:       models.PartialDate{Date: date(2020, 3, 2)},
			wantCmp: -1,
			wantOK:  true,
		},
		{
			name:    "full dates, equal",
			a:       models.PartialDate{Date: date(2020, 3, 2)},
			b:       models.PartialDate{Date: date(2020, 3, 2)},
			wantCmp: 0,
			wantOK:  true,
		},
		{
			name:    "year only on one side ignores month and day",
			a:       models.PartialDate{Date: date(2020, 12, 31), Mode: models.DateYearOnly},
			b:       models.PartialDate{Date: date(2020, 1, 1)},
			wantCmp: 0,
			wantOK:  true,
		},
		{
			name:    "year only, later year",
			a:       models.PartialDate{Date: date(2021, 1, 1), Mode: models.DateYearOnly},
			b:       models.PartialDate{Date: date(2020, 6, 15)},
			wantCmp: 1,
			wantOK:  true,
		},
		{
			name:    "year and month ignores day",
			a:       models.PartialDate{Date: date(2020, 5, 30)},
			b:       models.PartialDate{Date: date(2020, 5, 1), Mode: models.DateYearMonth},
			wantCmp: 0,
			wantOK:  true,
		},
		{
			name:    "year only wins over year and month",
			a:       models.PartialDate{Date: date(2020, 2, 1), Mode: models.DateYearMonth},
			b:       models.PartialDate{Date: date(2020, 11, 1), Mode: models.DateYearOnly},
			wantCmp: 0,
			wantOK:  true,
		},
		{
			name:    "year and month, earlier month",
			a:       models.PartialDate{Date: date(2020, 4, 30), Mode: models.DateYearMonth},
			b:       models.PartialDate{Date: date(2020, 5, 1)},
			wantCmp: -1,
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp, ok := CompareDates(tt.a, tt.b)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCmp, cmp)
			}
		})
	}
}

func TestPartialDate_Format(t *testing.T) {
	assert.Nil(t, models.PartialDate{}.Format())
	assert.Equal(t, "2020", *models.PartialDate{Date: date(2020, 5, 17), Mode: models.DateYearOnly}.Format())
	assert.Equal(t, "05.2020", *models.PartialDate{Date: date(2020, 5, 17), Mode: models.DateYearMonth}.Format())
	assert.Equal(t, "17.05.2020", *models.PartialDate{Date: date(2020, 5, 17)}.Format())
}
