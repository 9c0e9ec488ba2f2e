package dto

import (
	"time"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
)

// PhotoResponse фотография с публичным адресом изображения
type PhotoResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	CreatedAt   *time.Time  `json:"created_at,omitempty"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty"`
}

// CreatePhotoRequest текстовые поля multipart-формы загрузки
type CreatePhotoRequest struct {
	Title       string      `form:"title" validate:"required,min=1,max=100"`
	Description string      `form:"description" validate:"max=500"`
	CategoryIDs []uuid.UUID `form:"-"`
	CreatedBy   *uuid.UUID  `form:"-"`
}

type UpdatePhotoRequest struct {
	Title       *string     `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string     `json:"description" validate:"omitempty,max=500"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type PhotoCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func (r UpdatePhotoRequest) Apply(p models.Photo) models.Photo {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CategoryIDs != nil {
		p.CategoryIDs = r.CategoryIDs
	}
	return p
}
