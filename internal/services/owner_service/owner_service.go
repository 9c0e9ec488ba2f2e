package services

import (
	"context"
	"fmt"
	"log/slog"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
)

type OwnerService struct {
	log  *slog.Logger
	repo repository.OwnerRepository
}

func NewOwnerService(log *slog.Logger, repo repository.OwnerRepository) *OwnerService {
	return &OwnerService{
		log:  log,
		repo: repo,
	}
}

func (s *OwnerService) CreateOwner(ctx context.Context, req dto.OwnerRequest) (models.HorseOwner, error) {
	const op = "services.OwnerService.CreateOwner"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", req.Name),
	)

	owner := req.ToDomain()

	id, err := s.repo.CreateOwner(ctx, owner)
	if err != nil {
		log.Error("failed to create owner", sl.Err(err))

		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, err)
	}
	owner.ID = id

	log.Info("owner created", slog.String("owner_id", id.String()))

	return owner, nil
}

func (s *OwnerService) UpdateOwner(ctx context.Context, id uuid.UUID, req dto.UpdateOwnerRequest) (models.HorseOwner, error) {
	const op = "services.OwnerService.UpdateOwner"

	owner, err := s.repo.GetOwnerByID(ctx, id)
	if err != nil {
		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, err)
	}

	owner = req.Apply(owner)

	if err := s.repo.UpdateOwner(ctx, owner); err != nil {
		s.log.Error("failed to update owner", slog.String("op", op), sl.Err(err))

		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, err)
	}

	return owner, nil
}

func (s *OwnerService) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	const op = "services.OwnerService.DeleteOwner"

	if err := s.repo.DeleteOwner(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *OwnerService) GetOwner(ctx context.Context, id uuid.UUID) (models.HorseOwner, error) {
	const op = "services.OwnerService.GetOwner"

	owner, err := s.repo.GetOwnerByID(ctx, id)
	if err != nil {
		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, err)
	}
	return owner, nil
}

func (s *OwnerService) ListOwners(ctx context.Context, name string, types []models.OwnerType) ([]models.HorseOwner, error) {
	const op = "services.OwnerService.ListOwners"

	owners, err := s.repo.GetOwners(ctx, name, types)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return owners, nil
}
