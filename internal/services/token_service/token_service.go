package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/jwt"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenNotInStorage = errors.New("token not found in storage")
	ErrUserInactive      = errors.New("user is inactive")
)

const (
	AccessTokenExpire  = 15 * time.Minute
	RefreshTokenExpire = 7 * 24 * time.Hour
)

// UserGetter загружает актуальные данные пользователя при обновлении токенов
type UserGetter interface {
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type TokenService struct {
	log        *slog.Logger
	repo       repository.TokenRepository
	users      UserGetter
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(log *slog.Logger, repo repository.TokenRepository, users UserGetter, secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = AccessTokenExpire
	}
	if refreshTTL <= 0 {
		refreshTTL = RefreshTokenExpire
	}

	return &TokenService{
		log:        log,
		repo:       repo,
		users:      users,
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error) {
	const op = "services.TokenService.GenerateTokens"

	accessToken, err := jwt.NewToken(user, jwt.TypeAccess, s.accessTTL, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := jwt.NewToken(user, jwt.TypeRefresh, s.refreshTTL, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.SaveRefreshToken(ctx, user.ID, refreshToken, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshTokens выпускает новую пару токенов. Старый refresh-токен становится недействительным.
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "services.TokenService.RefreshTokens"

	log := s.log.With(slog.String("op", op))

	claims, err := s.parse(refreshToken, jwt.TypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.repo.GetRefreshToken(ctx, claims.UserID, refreshToken)
	if err != nil {
		log.Error("failed to check refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("refresh token is not in storage", slog.String("user_id", claims.UserID.String()))
		return nil, fmt.Errorf("%s: %w", op, ErrTokenNotInStorage)
	}

	if err := s.repo.DeleteRefreshToken(ctx, claims.UserID, refreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.GetUserById(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrUserInactive)
	}

	return s.GenerateTokens(ctx, user)
}

// VerifyAccess проверяет access-токен и возвращает его данные
func (s *TokenService) VerifyAccess(accessToken string) (models.TokenClaims, error) {
	const op = "services.TokenService.VerifyAccess"

	claims, err := s.parse(accessToken, jwt.TypeAccess)
	if err != nil {
		return models.TokenClaims{}, fmt.Errorf("%s: %w", op, err)
	}
	return claims, nil
}

// Revoke удаляет refresh-токен при выходе пользователя
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	const op = "services.TokenService.Revoke"

	claims, err := s.parse(refreshToken, jwt.TypeRefresh)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteRefreshToken(ctx, claims.UserID, refreshToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *TokenService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	const op = "services.TokenService.RevokeAll"

	if err := s.repo.DeleteAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *TokenService) parse(token, tokenType string) (models.TokenClaims, error) {
	claims, err := jwt.Parse(token, tokenType, s.secret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.TokenClaims{}, ErrTokenExpired
		}
		return models.TokenClaims{}, ErrInvalidToken
	}
	return claims, nil
}
