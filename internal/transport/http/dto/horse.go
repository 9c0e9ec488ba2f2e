package dto

import (
	"fmt"
	"time"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// CreateHorseRequest данные для создания лошади
type CreateHorseRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=50"`
	Sex         *int16      `json:"sex" validate:"required,min=0,max=2"`
	Kind        int16       `json:"kind" validate:"min=0,max=1"`
	BirthDate   *string     `json:"bdate" validate:"omitempty,datetime=2006-01-02"`
	BirthMode   int16       `json:"bdate_mode" validate:"min=0,max=2"`
	DeathDate   *string     `json:"ddate" validate:"omitempty,datetime=2006-01-02"`
	DeathMode   int16       `json:"ddate_mode" validate:"min=0,max=2"`
	Breed       *string     `json:"breed" validate:"omitempty,max=50"` // id, имя породы или "none"
	OwnerID     *uuid.UUID  `json:"owner_id"`
	Description string      `json:"description" validate:"max=500"`
	PhotoIDs    []uuid.UUID `json:"photo_ids"`
}

// UpdateHorseRequest частичное обновление: nil означает "не менять"
type UpdateHorseRequest struct {
	Name        *string     `json:"name" validate:"omitempty,min=1,max=50"`
	Sex         *int16      `json:"sex" validate:"omitempty,min=0,max=2"`
	Kind        *int16      `json:"kind" validate:"omitempty,min=0,max=1"`
	BirthDate   *string     `json:"bdate" validate:"omitempty,datetime=2006-01-02"`
	BirthMode   *int16      `json:"bdate_mode" validate:"omitempty,min=0,max=2"`
	DeathDate   *string     `json:"ddate" validate:"omitempty,datetime=2006-01-02"`
	DeathMode   *int16      `json:"ddate_mode" validate:"omitempty,min=0,max=2"`
	ClearBDate  bool        `json:"clear_bdate"`
	ClearDDate  bool        `json:"clear_ddate"`
	Breed       *string     `json:"breed" validate:"omitempty,max=50"`
	OwnerID     *uuid.UUID  `json:"owner_id"`
	ClearOwner  bool        `json:"clear_owner"`
	Description *string     `json:"description" validate:"omitempty,max=500"`
	PhotoIDs    []uuid.UUID `json:"photo_ids"`
	PhotoAction string      `json:"photo_action" validate:"omitempty,oneof=add replace remove"`
}

// PedigreeRequest список лошадей для привязки или отвязки
type PedigreeRequest struct {
	PedHorses []uuid.UUID `json:"ped_horses"`
}

// HorseResponse полное представление лошади
type HorseResponse struct {
	ID             uuid.UUID          `json:"id"`
	Name           string             `json:"name"`
	Sex            int16              `json:"sex"`
	Kind           int16              `json:"kind"`
	Breed          *models.Breed      `json:"breed"`
	Owner          *models.HorseOwner `json:"owner"`
	BDateFormatted *string            `json:"bdate_formatted"`
	DDateFormatted *string            `json:"ddate_formatted"`
	Age            *int               `json:"age"`
	Description    string             `json:"description"`
	Photos         []PhotoResponse    `json:"photos"`

	// только для модераторов
	BirthDate *string    `json:"bdate,omitempty"`
	BirthMode *int16     `json:"bdate_mode,omitempty"`
	DeathDate *string    `json:"ddate,omitempty"`
	DeathMode *int16     `json:"ddate_mode,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`

	Pedigree map[string]any   `json:"pedigree,omitempty"`
	Children []map[string]any `json:"children,omitempty"`
}

type ListResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

// ParseDate разбирает дату в формате YYYY-MM-DD, nil остается nil
func ParseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, *raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", *raw, err)
	}
	return &t, nil
}

func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// ToDomain переводит запрос в модель. Порода и фотографии разрешаются сервисом.
func (r CreateHorseRequest) ToDomain() (models.Horse, error) {
	bdate, err := ParseDate(r.BirthDate)
	if err != nil {
		return models.Horse{}, err
	}
	ddate, err := ParseDate(r.DeathDate)
	if err != nil {
		return models.Horse{}, err
	}

	return models.Horse{
		Name:        r.Name,
		Sex:         models.Sex(*r.Sex),
		Kind:        models.Kind(r.Kind),
		BirthDate:   bdate,
		BirthMode:   models.DateMode(r.BirthMode),
		DeathDate:   ddate,
		DeathMode:   models.DateMode(r.DeathMode),
		OwnerID:     r.OwnerID,
		Description: r.Description,
		PhotoIDs:    r.PhotoIDs,
	}, nil
}

// Apply накладывает частичное обновление на текущее состояние лошади
func (r UpdateHorseRequest) Apply(h models.Horse) (models.Horse, error) {
	if r.Name != nil {
		h.Name = *r.Name
	}
	if r.Sex != nil {
		h.Sex = models.Sex(*r.Sex)
	}
	if r.Kind != nil {
		h.Kind = models.Kind(*r.Kind)
	}
	if r.BirthMode != nil {
		h.BirthMode = models.DateMode(*r.BirthMode)
	}
	if r.DeathMode != nil {
		h.DeathMode = models.DateMode(*r.DeathMode)
	}
	if r.Description != nil {
		h.Description = *r.Description
	}

	if r.ClearBDate {
		h.BirthDate = nil
	} else if r.BirthDate != nil {
		bdate, err := ParseDate(r.BirthDate)
		if err != nil {
			return h, err
		}
		h.BirthDate = bdate
	}

	if r.ClearDDate {
		h.DeathDate = nil
	} else if r.DeathDate != nil {
		ddate, err := ParseDate(r.DeathDate)
		if err != nil {
			return h, err
		}
		h.DeathDate = ddate
	}

	if r.ClearOwner {
		h.OwnerID = nil
	} else if r.OwnerID != nil {
		h.OwnerID = r.OwnerID
	}

	return h, nil
}
