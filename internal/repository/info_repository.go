package repository

import (
	"context"
	"fmt"

	"equestrian/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

type InfoRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewInfoRepo(db *pgxpool.Pool) *InfoRepo {
	return &InfoRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *InfoRepo) CreateInfo(ctx context.Context, info models.KeyValueInformation) (uuid.UUID, error) {
	const op = "repository.InfoRepo.CreateInfo"

	query, args, err := r.sb.Insert("key_value_information").
		Columns("name", "title", "value", "as_type").
		Values(info.Name, info.Title, info.Value, info.AsType).
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

func (r *InfoRepo) UpdateInfo(ctx context.Context, info models.KeyValueInformation) error {
	const op = "repository.InfoRepo.UpdateInfo"

	query, args, err := r.sb.Update("key_value_information").
		Set("name", info.Name).
		Set("title", info.Title).
		Set("value", info.Value).
		Set("as_type", info.AsType).
		Where(squirrel.Eq{"id": info.ID}).
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

func (r *InfoRepo) DeleteInfo(ctx context.Context, id uuid.UUID) error {
	const op = "repository.InfoRepo.DeleteInfo"

	query, args, err := r.sb.Delete("key_value_information").
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

func (r *InfoRepo) GetInfoByID(ctx context.Context, id uuid.UUID) (models.KeyValueInformation, error) {
	const op = "repository.InfoRepo.GetInfoByID"

	query, args, err := r.sb.Select("id", "name", "title", "value", "as_type").
		From("key_value_information").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, err)
	}

	var info models.KeyValueInformation
	err = r.db.QueryRow(ctx, query, args...).Scan(&info.ID, &info.Name, &info.Title, &info.Value, &info.AsType)
	if err != nil {
		return models.KeyValueInformation{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return info, nil
}

func (r *InfoRepo) GetInfos(ctx context.Context, filter models.InfoFilter) ([]models.KeyValueInformation, error) {
	const op = "repository.InfoRepo.GetInfos"

	builder := r.sb.Select("id", "name", "title", "value", "as_type").
		From("key_value_information").
		OrderBy("name")
	if len(filter.Names) > 0 {
		builder = builder.Where("name = ANY(?::text[])", pq.Array(filter.Names))
	}
	if filter.Name != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + filter.Name + "%"})
	}
	if filter.Title != "" {
		builder = builder.Where(squirrel.ILike{"title": "%" + filter.Title + "%"})
	}
	if len(filter.Types) > 0 {
		builder = builder.Where("as_type = ANY(?::text[])", pq.Array(filter.Types))
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

	infos := make([]models.KeyValueInformation, 0)
	for rows.Next() {
		var info models.KeyValueInformation
		if err := rows.Scan(&info.ID, &info.Name, &info.Title, &info.Value, &info.AsType); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}
