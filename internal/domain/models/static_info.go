package models

import "github.com/google/uuid"

// InfoTypes допустимые типы значений справочной информации
var InfoTypes = map[string]struct{}{
	"string":   {},
	"number":   {},
	"float":    {},
	"boolean":  {},
	"json":     {},
	"date":     {},
	"time":     {},
	"datetime": {},
}

type KeyValueInformation struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Name   string    `json:"name" db:"name"`
	Title  string    `json:"title" db:"title"`
	Value  string    `json:"value" db:"value"`
	AsType string    `json:"as_type" db:"as_type"`
}

type ContactsGroup struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type Contact struct {
	ID           uuid.UUID `json:"id" db:"id"`
	MainTitle    string    `json:"main_title" db:"main_title"`
	Subtitle     string    `json:"subtitle" db:"subtitle"`
	PhoneNumbers []string  `json:"phone_numbers" db:"phone_numbers"`
	GroupID      uuid.UUID `json:"group" db:"group_id"`
	Priority     int       `json:"priority" db:"priority"`
}

type InfoFilter struct {
	Names []string
	Name  string
	Title string
	Types []string
}

type ContactFilter struct {
	MainTitle string
	Subtitle  string
	GroupIDs  []uuid.UUID
}
