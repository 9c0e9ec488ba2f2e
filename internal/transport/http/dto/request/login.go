package request

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // имя пользователя или email
	Password   string `json:"password" validate:"required,min=8"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
