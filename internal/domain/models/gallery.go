package models

import (
	"time"

	"github.com/google/uuid"
)

// Photo фотография общей галереи
type Photo struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	ImagePath   string      `json:"image" db:"image_path"`
	CategoryIDs []uuid.UUID `json:"category_ids" db:"-"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty" db:"created_by"`
}

type PhotoCategory struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

// PhotoFilter параметры выборки фотографий
type PhotoFilter struct {
	Title       string
	Description string
	CategoryIDs []uuid.UUID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	CreatedBy   []uuid.UUID
	Limit       int
	Offset      int
}
