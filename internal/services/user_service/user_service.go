package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"
	"equestrian/internal/storage"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExist          = errors.New("user already exist")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
)

type TokenGenerator interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
}

type UserService struct {
	log    *slog.Logger
	repo   repository.UserRepository
	tokens TokenGenerator
}

func NewUserService(log *slog.Logger, repo repository.UserRepository, tokens TokenGenerator) *UserService {
	return &UserService{
		log:    log,
		repo:   repo,
		tokens: tokens,
	}
}

// RegisterUser создает пользователя. Доступно только администраторам.
func (s *UserService) RegisterUser(ctx context.Context, input dto.UserRegisterInput) (uuid.UUID, error) {
	const op = "services.UserService.RegisterUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", input.Username),
	)

	log.Info("register user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveUser(ctx, input.ToDomain(passHash))
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exist", sl.Err(err))

			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExist)
		}

		log.Error("failed to save user", sl.Err(err))

		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))

	return id, nil
}

// Login проверяет пароль и выпускает пару токенов. identifier - имя пользователя или email.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*models.TokenPair, error) {
	const op = "services.UserService.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("identifier", identifier),
	)

	log.Info("attempting to login user")

	user, err := s.repo.UserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found", sl.Err(err))

			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if !user.IsActive {
		log.Warn("inactive user tried to login")

		return nil, fmt.Errorf("%s: %w", op, ErrUserInactive)
	}

	tokens, err := s.tokens.GenerateTokens(ctx, user)
	if err != nil {
		log.Error("failed to generate tokens", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		log.Warn("failed to update last login", sl.Err(err))
	}

	log.Info("user logged in successfully")

	return tokens, nil
}

func (s *UserService) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "services.UserService.IsAdmin"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	isAdmin, err := s.repo.IsAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("checked if user is admin", slog.Bool("is_admin", isAdmin))

	return isAdmin, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "services.UserService.GetUserByID"

	user, err := s.repo.GetUserById(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
