package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"equestrian/internal/domain/models"
	"equestrian/internal/storage"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBreedRepository struct {
	mock.Mock
}

func (m *MockBreedRepository) CreateBreed(ctx context.Context, breed models.Breed) (uuid.UUID, error) {
	args := m.Called(ctx, breed)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockBreedRepository) UpdateBreed(ctx context.Context, breed models.Breed) error {
	return m.Called(ctx, breed).Error(0)
}

func (m *MockBreedRepository) DeleteBreed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBreedRepository) GetBreedByID(ctx context.Context, id uuid.UUID) (models.Breed, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Breed), args.Error(1)
}

func (m *MockBreedRepository) GetBreedByName(ctx context.Context, name string) (models.Breed, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Breed), args.Error(1)
}

func (m *MockBreedRepository) GetBreeds(ctx context.Context, name string) ([]models.Breed, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]models.Breed), args.Error(1)
}

func TestBreedService(t *testing.T) {
	ctx := context.Background()
	repo := new(MockBreedRepository)
	svc := NewBreedService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

	id := uuid.New()

	t.Run("create", func(t *testing.T) {
		repo.On("CreateBreed", ctx, models.Breed{Name: "Akhal-Teke", Description: "desert"}).Return(id, nil).Once()

		breed, err := svc.CreateBreed(ctx, dto.BreedRequest{Name: " Akhal-Teke ", Description: "desert"})
		require.NoError(t, err)
		assert.Equal(t, id, breed.ID)
	})

	t.Run("duplicate", func(t *testing.T) {
		repo.On("CreateBreed", ctx, mock.Anything).Return(uuid.Nil, storage.ErrExists).Once()

		_, err := svc.CreateBreed(ctx, dto.BreedRequest{Name: "Akhal-Teke"})
		assert.ErrorIs(t, err, storage.ErrExists)
	})

	t.Run("partial update", func(t *testing.T) {
		description := "golden coat"
		repo.On("GetBreedByID", ctx, id).Return(models.Breed{ID: id, Name: "Akhal-Teke", Description: "desert"}, nil).Once()
		repo.On("UpdateBreed", ctx, models.Breed{ID: id, Name: "Akhal-Teke", Description: description}).Return(nil).Once()

		breed, err := svc.UpdateBreed(ctx, id, dto.UpdateBreedRequest{Description: &description})
		require.NoError(t, err)
		assert.Equal(t, "Akhal-Teke", breed.Name)
	})

	t.Run("update missing", func(t *testing.T) {
		missing := uuid.New()
		repo.On("GetBreedByID", ctx, missing).Return(models.Breed{}, storage.ErrNotFound).Once()

		_, err := svc.UpdateBreed(ctx, missing, dto.UpdateBreedRequest{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list and delete", func(t *testing.T) {
		repo.On("GetBreeds", ctx, "teke").Return([]models.Breed{{ID: id, Name: "Akhal-Teke"}}, nil).Once()
		repo.On("DeleteBreed", ctx, id).Return(nil).Once()

		breeds, err := svc.ListBreeds(ctx, " teke")
		require.NoError(t, err)
		assert.Len(t, breeds, 1)
		require.NoError(t, svc.DeleteBreed(ctx, id))
	})

	repo.AssertExpectations(t)
}
