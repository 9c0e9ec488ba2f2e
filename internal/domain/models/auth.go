package models

import "github.com/google/uuid"

type TokenPair struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

// TokenClaims данные, извлеченные из проверенного токена
type TokenClaims struct {
	UserID    uuid.UUID
	Role      Role
	TokenType string
	ExpiresAt int64
}
