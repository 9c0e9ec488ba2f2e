package dto

import (
	"equestrian/internal/domain/models"
)

// UserRegisterInput содержит данные для создания пользователя администратором
type UserRegisterInput struct {
	Username   string `json:"username" validate:"required,min=3,max=150,alphanum"`
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Patronymic string `json:"patronymic" validate:"max=150"`
	Password   string `json:"password" validate:"required,min=8,max=64"`
	Role       string `json:"role" validate:"omitempty,oneof=admin moderator viewer"`
}

func (input UserRegisterInput) ToDomain(passwordHash []byte) models.User {
	role := models.Role(input.Role)
	if role == "" {
		role = models.RoleViewer
	}

	return models.User{
		Username:   input.Username,
		Email:      input.Email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Patronymic: input.Patronymic,
		Password:   passwordHash,
		Role:       role,
		IsActive:   true,
	}
}
