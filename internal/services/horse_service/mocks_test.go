package services

import (
	"context"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
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

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) CreateOwner(ctx context.Context, owner models.HorseOwner) (uuid.UUID, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockOwnerRepository) UpdateOwner(ctx context.Context, owner models.HorseOwner) error {
	return m.Called(ctx, owner).Error(0)
}

func (m *MockOwnerRepository) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOwnerRepository) GetOwnerByID(ctx context.Context, id uuid.UUID) (models.HorseOwner, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.HorseOwner), args.Error(1)
}

func (m *MockOwnerRepository) GetOwners(ctx context.Context, name string, types []models.OwnerType) ([]models.HorseOwner, error) {
	args := m.Called(ctx, name, types)
	return args.Get(0).([]models.HorseOwner), args.Error(1)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) CreatePhoto(ctx context.Context, photo models.Photo) (uuid.UUID, error) {
	args := m.Called(ctx, photo)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPhotoRepository) UpdatePhoto(ctx context.Context, photo models.Photo) error {
	return m.Called(ctx, photo).Error(0)
}

func (m *MockPhotoRepository) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPhotoRepository) GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) GetPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Photo), args.Int(1), args.Error(2)
}

func (m *MockPhotoRepository) GetPhotosByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Photo, error) {
	args := m.Called(ctx, ids)
	if fn, ok := args.Get(0).(func(context.Context, []uuid.UUID) []models.Photo); ok {
		return fn(ctx, ids), args.Error(1)
	}
	return args.Get(0).([]models.Photo), args.Error(1)
}

func (m *MockPhotoRepository) CreateCategory(ctx context.Context, category models.PhotoCategory) (uuid.UUID, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPhotoRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPhotoRepository) GetCategories(ctx context.Context) ([]models.PhotoCategory, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PhotoCategory), args.Error(1)
}
