package dto

import (
	"equestrian/internal/domain/models"

	"github.com/google/uuid"
)

type InfoRequest struct {
	Name   string `json:"name" validate:"required,max=127"`
	Title  string `json:"title" validate:"max=255"`
	Value  string `json:"value"`
	AsType string `json:"as_type" validate:"required,oneof=string number float boolean json date time datetime"`
}

type UpdateInfoRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=127"`
	Title  *string `json:"title" validate:"omitempty,max=255"`
	Value  *string `json:"value"`
	AsType *string `json:"as_type" validate:"omitempty,oneof=string number float boolean json date time datetime"`
}

// InfoValue элемент публичного словаря справочной информации
type InfoValue struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

func (r InfoRequest) ToDomain() models.KeyValueInformation {
	return models.KeyValueInformation{Name: r.Name, Title: r.Title, Value: r.Value, AsType: r.AsType}
}

func (r UpdateInfoRequest) Apply(i models.KeyValueInformation) models.KeyValueInformation {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.Title != nil {
		i.Title = *r.Title
	}
	if r.Value != nil {
		i.Value = *r.Value
	}
	if r.AsType != nil {
		i.AsType = *r.AsType
	}
	return i
}

type ContactsGroupRequest struct {
	Name string `json:"name" validate:"required,max=127"`
}

type ContactRequest struct {
	MainTitle    string    `json:"main_title" validate:"required,max=127"`
	Subtitle     string    `json:"subtitle" validate:"max=127"`
	PhoneNumbers []string  `json:"phone_numbers" validate:"required,min=1,dive,e164"`
	GroupID      uuid.UUID `json:"group" validate:"required"`
	Priority     int       `json:"priority" validate:"omitempty,min=1,max=500"`
}

type UpdateContactRequest struct {
	MainTitle    *string    `json:"main_title" validate:"omitempty,max=127"`
	Subtitle     *string    `json:"subtitle" validate:"omitempty,max=127"`
	PhoneNumbers []string   `json:"phone_numbers" validate:"omitempty,min=1,dive,e164"`
	GroupID      *uuid.UUID `json:"group"`
	Priority     *int       `json:"priority" validate:"omitempty,min=1,max=500"`
}

func (r ContactRequest) ToDomain() models.Contact {
	return models.Contact{
		MainTitle:    r.MainTitle,
		Subtitle:     r.Subtitle,
		PhoneNumbers: r.PhoneNumbers,
		GroupID:      r.GroupID,
		Priority:     r.Priority,
	}
}

func (r UpdateContactRequest) Apply(c models.Contact) models.Contact {
	if r.MainTitle != nil {
		c.MainTitle = *r.MainTitle
	}
	if r.Subtitle != nil {
		c.Subtitle = *r.Subtitle
	}
	if r.PhoneNumbers != nil {
		c.PhoneNumbers = r.PhoneNumbers
	}
	if r.GroupID != nil {
		c.GroupID = *r.GroupID
	}
	if r.Priority != nil {
		c.Priority = *r.Priority
	}
	return c
}
