package models

import (
	"time"

	"github.com/google/uuid"
)

type Sex int16

const (
	SexMare     Sex = 0
	SexStallion Sex = 1
	SexGelding  Sex = 2
)

// IsDam сообщает, может ли лошадь данного пола быть матерью
func (s Sex) IsDam() bool {
	return s == SexMare
}

func (s Sex) Valid() bool {
	return s >= SexMare && s <= SexGelding
}

type Kind int16

const (
	KindHorse Kind = 0
	KindPony  Kind = 1
)

// ParentRole роль родителя в родословной
type ParentRole int16

const (
	RoleDam  ParentRole = 0
	RoleSire ParentRole = 1
)

func (r ParentRole) String() string {
	if r == RoleDam {
		return "dam"
	}
	return "sire"
}

// RoleFor возвращает роль, которую лошадь данного пола занимает как родитель
func RoleFor(sex Sex) ParentRole {
	if sex.IsDam() {
		return RoleDam
	}
	return RoleSire
}

// Horse представляет собой модель лошади
type Horse struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Sex         Sex         `json:"sex" db:"sex"`
	Kind        Kind        `json:"kind" db:"kind"`
	BirthDate   *time.Time  `json:"bdate,omitempty" db:"bdate"`
	BirthMode   DateMode    `json:"bdate_mode" db:"bdate_mode"`
	DeathDate   *time.Time  `json:"ddate,omitempty" db:"ddate"`
	DeathMode   DateMode    `json:"ddate_mode" db:"ddate_mode"`
	BreedID     *uuid.UUID  `json:"breed_id,omitempty" db:"breed_id"`
	OwnerID     *uuid.UUID  `json:"owner_id,omitempty" db:"owner_id"`
	Description string      `json:"description" db:"description"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	CreatedBy   *uuid.UUID  `json:"created_by,omitempty" db:"created_by"`
	PhotoIDs    []uuid.UUID `json:"photo_ids,omitempty" db:"-"`
}

func (h Horse) Birth() PartialDate {
	return PartialDate{Date: h.BirthDate, Mode: h.BirthMode}
}

func (h Horse) Death() PartialDate {
	return PartialDate{Date: h.DeathDate, Mode: h.DeathMode}
}

// Age возвращает возраст в полных годах на дату смерти или на now
func (h Horse) Age(now time.Time) *int {
	if h.BirthDate == nil {
		return nil
	}
	last := now
	if h.DeathDate != nil {
		last = *h.DeathDate
	}
	days := last.Sub(*h.BirthDate).Hours() / 24
	age := int(days / 365.2425)
	return &age
}

// ParentEdge ребро родословной: parent является матерью или отцом child
type ParentEdge struct {
	ChildID  uuid.UUID  `db:"child_id"`
	ParentID uuid.UUID  `db:"parent_id"`
	Role     ParentRole `db:"role"`
}

// HorseFilter параметры выборки списка лошадей
type HorseFilter struct {
	Name      string
	Sexes     []Sex
	Kind      *Kind
	BreedID   *uuid.UUID
	OwnerID   *uuid.UUID
	BornFrom  *time.Time
	BornTo    *time.Time
	ExcludeID *uuid.UUID
	Limit     int
	Offset    int
}

type Breed struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
}

type OwnerType int16

const (
	OwnerLegalEntity OwnerType = 0
	OwnerPerson      OwnerType = 1
	OwnerUnknown     OwnerType = 2
)

type HorseOwner struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Type         OwnerType `json:"type" db:"type"`
	Address      string    `json:"address" db:"address"`
	PhoneNumbers []string  `json:"phone_number" db:"phone_numbers"`
}
