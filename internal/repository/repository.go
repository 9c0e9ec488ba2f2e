package repository

import (
	"errors"

	"equestrian/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// Repository набор Postgres-репозиториев поверх одного пула
type Repository struct {
	Horse   *HorseRepo
	Breed   *BreedRepo
	Owner   *OwnerRepo
	Photo   *PhotoRepo
	User    *UserRepo
	Info    *InfoRepo
	Contact *ContactRepo
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Horse:   NewHorseRepo(db),
		Breed:   NewBreedRepo(db),
		Owner:   NewOwnerRepo(db),
		Photo:   NewPhotoRepo(db),
		User:    NewUserRepository(db),
		Info:    NewInfoRepo(db),
		Contact: NewContactRepo(db),
	}
}

// storageError переводит ошибки драйвера в ошибки пакета storage
func storageError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return storage.ErrExists
		case foreignKeyViolation:
			return storage.ErrNotFound
		}
	}

	return err
}

func affected(tag pgconn.CommandTag) error {
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// uuidArray готовит список идентификаторов для параметра ANY(?::uuid[])
func uuidArray(ids []uuid.UUID) any {
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	return pq.Array(raw)
}
