package repository

import (
	"context"
	"fmt"

	"equestrian/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type BreedRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewBreedRepo(db *pgxpool.Pool) *BreedRepo {
	return &BreedRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BreedRepo) CreateBreed(ctx context.Context, breed models.Breed) (uuid.UUID, error) {
	const op = "repository.BreedRepo.CreateBreed"

	query, args, err := r.sb.Insert("breeds").
		Columns("name", "description").
		Values(breed.Name, breed.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return id, nil
}

func (r *BreedRepo) UpdateBreed(ctx context.Context, breed models.Breed) error {
	const op = "repository.BreedRepo.UpdateBreed"

	query, args, err := r.sb.Update("breeds").
		Set("name", breed.Name).
		Set("description", breed.Description).
		Where(squirrel.Eq{"id": breed.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storageError(err))
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *BreedRepo) DeleteBreed(ctx context.Context, id uuid.UUID) error {
	const op = "repository.BreedRepo.DeleteBreed"

	query, args, err := r.sb.Delete("breeds").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *BreedRepo) GetBreedByID(ctx context.Context, id uuid.UUID) (models.Breed, error) {
	return r.getBreed(ctx, "repository.BreedRepo.GetBreedByID", squirrel.Eq{"id": id})
}

// GetBreedByName ищет породу по точному имени без учета регистра
func (r *BreedRepo) GetBreedByName(ctx context.Context, name string) (models.Breed, error) {
	return r.getBreed(ctx, "repository.BreedRepo.GetBreedByName", squirrel.Expr("LOWER(name) = LOWER(?)", name))
}

func (r *BreedRepo) getBreed(ctx context.Context, op string, pred squirrel.Sqlizer) (models.Breed, error) {
	query, args, err := r.sb.Select("id", "name", "description").
		From("breeds").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return models.Breed{}, fmt.Errorf("%s: %w", op, err)
	}

	var b models.Breed
	if err := r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Description); err != nil {
		return models.Breed{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return b, nil
}

func (r *BreedRepo) GetBreeds(ctx context.Context, name string) ([]models.Breed, error) {
	const op = "repository.BreedRepo.GetBreeds"

	builder := r.sb.Select("id", "name", "description").From("breeds").OrderBy("name")
	if name != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + name + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	breeds := make([]models.Breed, 0)
	for rows.Next() {
		var b models.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		breeds = append(breeds, b)
	}

	return breeds, rows.Err()
}
