package dto

import (
	"equestrian/internal/domain/models"
)

type BreedRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=50"`
	Description string `json:"description" validate:"max=500"`
}

type UpdateBreedRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=5,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r BreedRequest) ToDomain() models.Breed {
	return models.Breed{Name: r.Name, Description: r.Description}
}

func (r UpdateBreedRequest) Apply(b models.Breed) models.Breed {
	if r.Name != nil {
		b.Name = *r.Name
	}
	if r.Description != nil {
		b.Description = *r.Description
	}
	return b
}

type OwnerRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=150"`
	Description  string   `json:"description" validate:"max=500"`
	Type         int16    `json:"type" validate:"min=0,max=2"`
	Address      string   `json:"address" validate:"max=200"`
	PhoneNumbers []string `json:"phone_number" validate:"dive,e164"`
}

type UpdateOwnerRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=150"`
	Description  *string  `json:"description" validate:"omitempty,max=500"`
	Type         *int16   `json:"type" validate:"omitempty,min=0,max=2"`
	Address      *string  `json:"address" validate:"omitempty,max=200"`
	PhoneNumbers []string `json:"phone_number" validate:"omitempty,dive,e164"`
}

func (r OwnerRequest) ToDomain() models.HorseOwner {
	return models.HorseOwner{
		Name:         r.Name,
		Description:  r.Description,
		Type:         models.OwnerType(r.Type),
		Address:      r.Address,
		PhoneNumbers: r.PhoneNumbers,
	}
}

func (r UpdateOwnerRequest) Apply(o models.HorseOwner) models.HorseOwner {
	if r.Name != nil {
		o.Name = *r.Name
	}
	if r.Description != nil {
		o.Description = *r.Description
	}
	if r.Type != nil {
		o.Type = models.OwnerType(*r.Type)
	}
	if r.Address != nil {
		o.Address = *r.Address
	}
	if r.PhoneNumbers != nil {
		o.PhoneNumbers = r.PhoneNumbers
	}
	return o
}
