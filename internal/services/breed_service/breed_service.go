package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
)

type BreedService struct {
	log  *slog.Logger
	repo repository.BreedRepository
}

func NewBreedService(log *slog.Logger, repo repository.BreedRepository) *BreedService {
	return &BreedService{
		log:  log,
		repo: repo,
	}
}

func (s *BreedService) CreateBreed(ctx context.Context, req dto.BreedRequest) (models.Breed, error) {
	const op = "services.BreedService.CreateBreed"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", req.Name),
	)

	breed := req.ToDomain()
	breed.Name = strings.TrimSpace(breed.Name)

	id, err := s.repo.CreateBreed(ctx, breed)
	if err != nil {
		log.Error("failed to create breed", sl.Err(err))

		return models.Breed{}, fmt.Errorf("%s: %w", op, err)
	}
	breed.ID = id

	log.Info("breed created", slog.String("breed_id", id.String()))

	return breed, nil
}

func (s *BreedService) UpdateBreed(ctx context.Context, id uuid.UUID, req dto.UpdateBreedRequest) (models.Breed, error) {
	const op = "services.BreedService.UpdateBreed"

	breed, err := s.repo.GetBreedByID(ctx, id)
	if err != nil {
		return models.Breed{}, fmt.Errorf("%s: %w", op, err)
	}

	breed = req.Apply(breed)

	if err := s.repo.UpdateBreed(ctx, breed); err != nil {
		s.log.Error("failed to update breed", slog.String("op", op), sl.Err(err))

		return models.Breed{}, fmt.Errorf("%s: %w", op, err)
	}

	return breed, nil
}

func (s *BreedService) DeleteBreed(ctx context.Context, id uuid.UUID) error {
	const op = "services.BreedService.DeleteBreed"

	if err := s.repo.DeleteBreed(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("breed deleted", slog.String("op", op), slog.String("breed_id", id.String()))

	return nil
}

func (s *BreedService) GetBreed(ctx context.Context, id uuid.UUID) (models.Breed, error) {
	const op = "services.BreedService.GetBreed"

	breed, err := s.repo.GetBreedByID(ctx, id)
	if err != nil {
		return models.Breed{}, fmt.Errorf("%s: %w", op, err)
	}
	return breed, nil
}

// ListBreeds возвращает породы, имя которых содержит name
func (s *BreedService) ListBreeds(ctx context.Context, name string) ([]models.Breed, error) {
	const op = "services.BreedService.ListBreeds"

	breeds, err := s.repo.GetBreeds(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return breeds, nil
}
