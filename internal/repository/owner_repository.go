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

type OwnerRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewOwnerRepo(db *pgxpool.Pool) *OwnerRepo {
	return &OwnerRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *OwnerRepo) CreateOwner(ctx context.Context, owner models.HorseOwner) (uuid.UUID, error) {
	const op = "repository.OwnerRepo.CreateOwner"

	query, args, err := r.sb.Insert("horse_owners").
		Columns("name", "description", "type", "address", "phone_numbers").
		Values(owner.Name, owner.Description, int16(owner.Type), owner.Address, pq.Array(phones(owner.PhoneNumbers))).
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

func (r *OwnerRepo) UpdateOwner(ctx context.Context, owner models.HorseOwner) error {
	const op = "repository.OwnerRepo.UpdateOwner"

	query, args, err := r.sb.Update("horse_owners").
		Set("name", owner.Name).
		Set("description", owner.Description).
		Set("type", int16(owner.Type)).
		Set("address", owner.Address).
		Set("phone_numbers", pq.Array(phones(owner.PhoneNumbers))).
		Where(squirrel.Eq{"id": owner.ID}).
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

func (r *OwnerRepo) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	const op = "repository.OwnerRepo.DeleteOwner"

	query, args, err := r.sb.Delete("horse_owners").
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

func (r *OwnerRepo) GetOwnerByID(ctx context.Context, id uuid.UUID) (models.HorseOwner, error) {
	const op = "repository.OwnerRepo.GetOwnerByID"

	query, args, err := r.sb.Select("id", "name", "description", "type", "address", "phone_numbers").
		From("horse_owners").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, err)
	}

	var o models.HorseOwner
	err = r.db.QueryRow(ctx, query, args...).Scan(&o.ID, &o.Name, &o.Description, &o.Type, &o.Address, pq.Array(&o.PhoneNumbers))
	if err != nil {
		return models.HorseOwner{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return o, nil
}

func (r *OwnerRepo) GetOwners(ctx context.Context, name string, types []models.OwnerType) ([]models.HorseOwner, error) {
	const op = "repository.OwnerRepo.GetOwners"

	builder := r.sb.Select("id", "name", "description", "type", "address", "phone_numbers").
		From("horse_owners").
		OrderBy("name")
	if name != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + name + "%"})
	}
	if len(types) > 0 {
		raw := make([]int64, 0, len(types))
		for _, t := range types {
			raw = append(raw, int64(t))
		}
		builder = builder.Where("type = ANY(?::smallint[])", pq.Array(raw))
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

	owners := make([]models.HorseOwner, 0)
	for rows.Next() {
		var o models.HorseOwner
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.Type, &o.Address, pq.Array(&o.PhoneNumbers)); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		owners = append(owners, o)
	}

	return owners, rows.Err()
}

func phones(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
