package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"equestrian/internal/storage"

	"github.com/google/uuid"
)

// DefaultMaxSize предельный размер загружаемого изображения
const DefaultMaxSize int64 = 10 << 20

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// FileStorage хранилище изображений галереи
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	GetFullPath(relativePath string) string
	BaseURL() string
	URL(relativePath string) string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // каталог хранения, например ./media
	baseURL string // префикс URL, по которому раздаются файлы
	maxSize int64
}

func NewLocalFileStorage(baseDir, baseURL string, maxSize int64) (*LocalFileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Save сохраняет изображение под новым именем и возвращает путь относительно baseDir
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	const op = "filestorage.LocalFileStorage.Save"

	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if file.Size > s.maxSize {
		return "", 0, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to open source file: %w", op, err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, fmt.Errorf("%s: failed to read file header: %w", op, err)
	}
	ext, ok := allowedTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", 0, fmt.Errorf("%s: %w", op, storage.ErrInvalidFileType)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", 0, fmt.Errorf("%s: %w", op, err)
	}

	relPath := filepath.Join(subPath, uuid.NewString()+ext)
	fullPath := filepath.Join(s.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("%s: failed to create directories: %w", op, err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("%s: failed to create destination file: %w", op, err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, io.LimitReader(src, s.maxSize+1))
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(fullPath)
			return "", 0, fmt.Errorf("%s: failed to copy file: %w", op, copyErr)
		}
		if size > s.maxSize {
			_ = os.Remove(fullPath)
			return "", 0, fmt.Errorf("%s: %w", op, storage.ErrFileTooLarge)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(fullPath)
		return "", 0, ctx.Err()
	}

	return filepath.ToSlash(relPath), size, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath := s.GetFullPath(filePath)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return storage.ErrFileNotFound
		}
		return err
	}
	return nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.Clean("/"+relativePath))
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

// URL возвращает публичный адрес сохраненного файла
func (s *LocalFileStorage) URL(relativePath string) string {
	return s.baseURL + "/" + strings.TrimLeft(relativePath, "/")
}
