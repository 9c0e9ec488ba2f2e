package repository

import (
	"context"
	"fmt"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var userColumns = []string{
	"id",
	"username",
	"email",
	"first_name",
	"last_name",
	"patronymic",
	"password",
	"role",
	"is_active",
	"date_joined",
	"last_login",
}

type UserRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewUserRepository(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepo) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	const op = "repository.user_repository.SaveUser"

	query, args, err := r.sb.Insert("users").
		Columns(
			"username",
			"email",
			"first_name",
			"last_name",
			"patronymic",
			"password",
			"role",
			"is_active",
			"date_joined",
		).
		Values(
			user.Username,
			user.Email,
			user.FirstName,
			user.LastName,
			user.Patronymic,
			user.Password,
			string(user.Role),
			user.IsActive,
			time.Now().UTC(),
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if mapped := storageError(err); mapped == storage.ErrExists {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UserByIdentifier ищет пользователя по имени пользователя или email
func (r *UserRepo) UserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	const op = "repository.user_repository.UserByIdentifier"

	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Or{
			sq.Eq{"username": identifier},
			sq.Expr("LOWER(email) = LOWER(?)", identifier),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	return r.scanUser(op, r.db.QueryRow(ctx, query, args...))
}

func (r *UserRepo) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "repository.user_repository.GetUserById"

	query, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	return r.scanUser(op, r.db.QueryRow(ctx, query, args...))
}

func (r *UserRepo) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	const op = "repository.user_repository.IsAdmin"

	sql, args, err := r.sb.Select("role").From("users").Where(sq.Eq{"id": userID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var role string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&role)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return models.Role(role) == models.RoleAdmin, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const op = "repository.user_repository.UpdateLastLogin"

	query, args, err := r.sb.Update("users").
		Set("last_login", at).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepo) scanUser(op string, row pgx.Row) (models.User, error) {
	var (
		u    models.User
		role string
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Patronymic,
		&u.Password,
		&role,
		&u.IsActive,
		&u.DateJoined,
		&u.LastLogin,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = models.Role(role)

	return u, nil
}
