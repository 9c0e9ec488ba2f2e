package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"equestrian/internal/domain/models"
	"equestrian/internal/storage"
	filestorage "equestrian/internal/storage/filestorage"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func createTestFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func newGalleryService(t *testing.T) (*GalleryService, *MockPhotoRepository, *filestorage.LocalFileStorage) {
	t.Helper()

	files, err := filestorage.NewLocalFileStorage(t.TempDir(), "/media", 0)
	require.NoError(t, err)

	repo := new(MockPhotoRepository)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGalleryService(log, repo, files), repo, files
}

func TestGalleryService_UploadPhoto(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, repo, files := newGalleryService(t)
		id := uuid.New()
		category := uuid.New()

		repo.On("CreatePhoto", ctx, mock.MatchedBy(func(p models.Photo) bool {
			return p.Title == "Derby" && len(p.CategoryIDs) == 1 && p.ImagePath != ""
		})).Return(id, nil).Once()
		repo.On("GetPhotoByID", ctx, id).Return(models.Photo{ID: id, Title: "Derby", ImagePath: "gallery/photos/x.png"}, nil).Once()

		photo, err := svc.UploadPhoto(ctx, createTestFile(t, "derby.png", pngHeader), dto.CreatePhotoRequest{
			Title:       " Derby ",
			CategoryIDs: []uuid.UUID{category},
		})
		require.NoError(t, err)
		assert.Equal(t, id, photo.ID)
		assert.Equal(t, "/media/gallery/photos/x.png", svc.PhotoURL(photo))

		saved := repo.Calls[0].Arguments.Get(1).(models.Photo)
		_, statErr := os.Stat(files.GetFullPath(saved.ImagePath))
		assert.NoError(t, statErr)
		repo.AssertExpectations(t)
	})

	t.Run("file removed when record fails", func(t *testing.T) {
		svc, repo, files := newGalleryService(t)

		repo.On("CreatePhoto", ctx, mock.Anything).Return(uuid.Nil, errors.New("db error")).Once()

		_, err := svc.UploadPhoto(ctx, createTestFile(t, "derby.png", pngHeader), dto.CreatePhotoRequest{Title: "Derby"})
		assert.ErrorContains(t, err, "db error")

		saved := repo.Calls[0].Arguments.Get(1).(models.Photo)
		_, statErr := os.Stat(files.GetFullPath(saved.ImagePath))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("not an image", func(t *testing.T) {
		svc, repo, _ := newGalleryService(t)

		_, err := svc.UploadPhoto(ctx, createTestFile(t, "notes.txt", []byte("plain text")), dto.CreatePhotoRequest{Title: "Notes"})
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
		repo.AssertNotCalled(t, "CreatePhoto", mock.Anything, mock.Anything)
	})

	t.Run("no file", func(t *testing.T) {
		svc, _, _ := newGalleryService(t)

		_, err := svc.UploadPhoto(ctx, nil, dto.CreatePhotoRequest{Title: "Empty"})
		assert.ErrorIs(t, err, ErrFileRequired)
	})
}

func TestGalleryService_UpdatePhoto(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newGalleryService(t)

	id := uuid.New()
	current := models.Photo{ID: id, Title: "Old", Description: "kept"}
	title := "New"

	repo.On("GetPhotoByID", ctx, id).Return(current, nil).Once()
	repo.On("UpdatePhoto", ctx, models.Photo{ID: id, Title: "New", Description: "kept"}).Return(nil).Once()

	photo, err := svc.UpdatePhoto(ctx, id, dto.UpdatePhotoRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", photo.Title)

	missing := uuid.New()
	repo.On("GetPhotoByID", ctx, missing).Return(models.Photo{}, storage.ErrNotFound).Once()
	_, err = svc.UpdatePhoto(ctx, missing, dto.UpdatePhotoRequest{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	repo.AssertExpectations(t)
}

func TestGalleryService_DeletePhoto(t *testing.T) {
	ctx := context.Background()
	svc, repo, files := newGalleryService(t)

	path, _, err := files.Save(ctx, createTestFile(t, "derby.png", pngHeader), "gallery/photos")
	require.NoError(t, err)

	id := uuid.New()
	repo.On("GetPhotoByID", ctx, id).Return(models.Photo{ID: id, ImagePath: path}, nil).Once()
	repo.On("DeletePhoto", ctx, id).Return(nil).Once()

	require.NoError(t, svc.DeletePhoto(ctx, id))

	_, statErr := os.Stat(files.GetFullPath(path))
	assert.True(t, os.IsNotExist(statErr))
	repo.AssertExpectations(t)
}

func TestGalleryService_Categories(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newGalleryService(t)

	id := uuid.New()
	repo.On("CreateCategory", ctx, models.PhotoCategory{Name: "Horses"}).Return(id, nil).Once()
	repo.On("GetCategories", ctx).Return([]models.PhotoCategory{{ID: id, Name: "Horses"}}, nil).Once()
	repo.On("DeleteCategory", ctx, id).Return(nil).Once()

	category, err := svc.CreateCategory(ctx, "  Horses ")
	require.NoError(t, err)
	assert.Equal(t, id, category.ID)

	list, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteCategory(ctx, id))
	repo.AssertExpectations(t)
}
