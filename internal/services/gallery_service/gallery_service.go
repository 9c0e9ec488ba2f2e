package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/repository"
	"equestrian/internal/storage"
	filestorage "equestrian/internal/storage/filestorage"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
)

const photosDir = "gallery/photos"

var ErrFileRequired = errors.New("file is required")

type GalleryService struct {
	log   *slog.Logger
	repo  repository.PhotoRepository
	files filestorage.FileStorage
}

func NewGalleryService(log *slog.Logger, repo repository.PhotoRepository, files filestorage.FileStorage) *GalleryService {
	return &GalleryService{
		log:   log,
		repo:  repo,
		files: files,
	}
}

// UploadPhoto сохраняет файл изображения и создает запись о фотографии
func (s *GalleryService) UploadPhoto(ctx context.Context, file *multipart.FileHeader, req dto.CreatePhotoRequest) (models.Photo, error) {
	const op = "services.GalleryService.UploadPhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("title", req.Title),
	)

	if file == nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, ErrFileRequired)
	}

	log.Info("uploading photo")

	path, size, err := s.files.Save(ctx, file, photosDir)
	if err != nil {
		log.Error("failed to save file", sl.Err(err))

		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	photo := models.Photo{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		ImagePath:   path,
		CategoryIDs: req.CategoryIDs,
		CreatedBy:   req.CreatedBy,
	}

	id, err := s.repo.CreatePhoto(ctx, photo)
	if err != nil {
		// запись не создана, файл больше не нужен
		if delErr := s.files.Delete(ctx, path); delErr != nil {
			log.Warn("failed to delete orphan file", sl.Err(delErr))
		}
		log.Error("failed to create photo", sl.Err(err))

		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo uploaded", slog.String("photo_id", id.String()), slog.Int64("size", size))

	return s.repo.GetPhotoByID(ctx, id)
}

func (s *GalleryService) UpdatePhoto(ctx context.Context, id uuid.UUID, req dto.UpdatePhotoRequest) (models.Photo, error) {
	const op = "services.GalleryService.UpdatePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	photo, err := s.repo.GetPhotoByID(ctx, id)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	photo = req.Apply(photo)

	if err := s.repo.UpdatePhoto(ctx, photo); err != nil {
		log.Error("failed to update photo", sl.Err(err))

		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("photo updated")

	return photo, nil
}

// DeletePhoto удаляет запись и файл изображения
func (s *GalleryService) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "services.GalleryService.DeletePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("photo_id", id.String()),
	)

	photo, err := s.repo.GetPhotoByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeletePhoto(ctx, id); err != nil {
		log.Error("failed to delete photo", sl.Err(err))

		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.files.Delete(ctx, photo.ImagePath); err != nil {
		if !errors.Is(err, storage.ErrFileNotFound) {
			log.Warn("failed to delete photo file", sl.Err(err))
		}
	}

	log.Info("photo deleted")

	return nil
}

func (s *GalleryService) GetPhoto(ctx context.Context, id uuid.UUID) (models.Photo, error) {
	const op = "services.GalleryService.GetPhoto"

	photo, err := s.repo.GetPhotoByID(ctx, id)
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}
	return photo, nil
}

func (s *GalleryService) ListPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, int, error) {
	const op = "services.GalleryService.ListPhotos"

	photos, total, err := s.repo.GetPhotos(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return photos, total, nil
}

// PhotoURL публичный адрес изображения
func (s *GalleryService) PhotoURL(photo models.Photo) string {
	return s.files.URL(photo.ImagePath)
}

func (s *GalleryService) CreateCategory(ctx context.Context, name string) (models.PhotoCategory, error) {
	const op = "services.GalleryService.CreateCategory"

	category := models.PhotoCategory{Name: strings.TrimSpace(name)}

	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return models.PhotoCategory{}, fmt.Errorf("%s: %w", op, err)
	}
	category.ID = id

	s.log.Info("photo category created", slog.String("op", op), slog.String("name", category.Name))

	return category, nil
}

func (s *GalleryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "services.GalleryService.DeleteCategory"

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GalleryService) ListCategories(ctx context.Context) ([]models.PhotoCategory, error) {
	const op = "services.GalleryService.ListCategories"

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}
