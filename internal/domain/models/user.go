package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleViewer    Role = "viewer"
)

// CanModerate сообщает, может ли роль редактировать лошадей и галерею
func (r Role) CanModerate() bool {
	return r == RoleAdmin || r == RoleModerator
}

type User struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Username   string     `db:"username" json:"username"`
	Email      string     `db:"email" json:"email"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	Patronymic string     `db:"patronymic" json:"patronymic,omitempty"`
	Password   []byte     `db:"password" json:"-"`
	Role       Role       `db:"role" json:"role"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	DateJoined time.Time  `db:"date_joined" json:"date_joined"`
	LastLogin  *time.Time `db:"last_login" json:"last_login,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FullName возвращает "Фамилия Имя Отчество"
func (u User) FullName() string {
	name := u.LastName + " " + u.FirstName
	if u.Patronymic != "" {
		name += " " + u.Patronymic
	}
	return name
}
