package storage

import "errors"

// Ошибки хранилища записей. Репозитории переводят в них ошибки драйвера,
// обработчики HTTP по ним выбирают код ответа.
var (
	ErrNotFound     = errors.New("not found")
	ErrExists       = errors.New("already exists")
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
)

// Ошибки файлового хранилища фотографий
var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
