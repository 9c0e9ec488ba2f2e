package jwt

import (
	"errors"
	"fmt"
	"time"

	"equestrian/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidTokenClaims = errors.New("invalid token claims")
	ErrTokenExpired       = errors.New("token expired")
)

// NewToken подписывает токен пользователя заданного типа
func NewToken(user models.User, tokenType string, duration time.Duration, secret string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  user.ID.String(),
		"role": string(user.Role),
		"typ":  tokenType,
		"jti":  uuid.NewString(),
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// Parse проверяет подпись, срок действия и тип токена
func Parse(tokenString, tokenType, secret string) (models.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenClaims{}, ErrTokenExpired
		}
		return models.TokenClaims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.TokenClaims{}, ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if typ != tokenType {
		return models.TokenClaims{}, ErrInvalidTokenClaims
	}

	rawID, _ := claims["uid"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return models.TokenClaims{}, ErrInvalidTokenClaims
	}

	role, _ := claims["role"].(string)

	var exp int64
	if v, err := claims.GetExpirationTime(); err == nil && v != nil {
		exp = v.Unix()
	}

	return models.TokenClaims{
		UserID:    userID,
		Role:      models.Role(role),
		TokenType: typ,
		ExpiresAt: exp,
	}, nil
}
