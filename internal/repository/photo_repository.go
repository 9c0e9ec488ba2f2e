package repository

import (
	"context"
	"fmt"
	"time"

	"equestrian/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var photoColumns = []string{"p.id", "p.title", "p.description", "p.image_path", "p.created_at", "p.created_by"}

type PhotoRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewPhotoRepo(db *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreatePhoto сохраняет фотографию и ее категории и возвращает ID
func (r *PhotoRepo) CreatePhoto(ctx context.Context, photo models.Photo) (uuid.UUID, error) {
	const op = "repository.PhotoRepo.CreatePhoto"

	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("photos").
		Columns(
			"title",
			"description",
			"image_path",
			"created_at",
			"created_by",
		).
		Values(
			photo.Title,
			photo.Description,
			photo.ImagePath,
			photo.CreatedAt,
			photo.CreatedBy,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var id uuid.UUID
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, storageError(err))
	}

	if err := r.setCategories(ctx, tx, id, photo.CategoryIDs); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// UpdatePhoto обновляет подпись и категории фотографии
func (r *PhotoRepo) UpdatePhoto(ctx context.Context, photo models.Photo) error {
	const op = "repository.PhotoRepo.UpdatePhoto"

	query, args, err := r.sb.Update("photos").
		Set("title", photo.Title).
		Set("description", photo.Description).
		Where(squirrel.Eq{"id": photo.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := affected(tag); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.setCategories(ctx, tx, photo.ID, photo.CategoryIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return tx.Commit(ctx)
}

func (r *PhotoRepo) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PhotoRepo.DeletePhoto"

	query, args, err := r.sb.Delete("photos").
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

func (r *PhotoRepo) GetPhotoByID(ctx context.Context, id uuid.UUID) (models.Photo, error) {
	const op = "repository.PhotoRepo.GetPhotoByID"

	photos, err := r.GetPhotosByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return models.Photo{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(photos) == 0 {
		return models.Photo{}, fmt.Errorf("%s: %w", op, storageError(pgx.ErrNoRows))
	}

	return photos[0], nil
}

func (r *PhotoRepo) GetPhotosByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Photo, error) {
	const op = "repository.PhotoRepo.GetPhotosByIDs"

	if len(ids) == 0 {
		return []models.Photo{}, nil
	}

	query, args, err := r.sb.Select(photoColumns...).
		From("photos p").
		Where(squirrel.Eq{"p.id": ids}).
		OrderBy("p.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := r.queryPhotos(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

// GetPhotos возвращает страницу фотографий по фильтру и общее число найденных
func (r *PhotoRepo) GetPhotos(ctx context.Context, filter models.PhotoFilter) ([]models.Photo, int, error) {
	const op = "repository.PhotoRepo.GetPhotos"

	countQuery, countArgs, err := applyPhotoFilter(r.sb.Select("COUNT(*)").From("photos p"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	builder := applyPhotoFilter(r.sb.Select(photoColumns...).From("photos p"), filter).
		OrderBy("p.created_at DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	photos, err := r.queryPhotos(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return photos, total, nil
}

func (r *PhotoRepo) CreateCategory(ctx context.Context, category models.PhotoCategory) (uuid.UUID, error) {
	const op = "repository.PhotoRepo.CreateCategory"

	query, args, err := r.sb.Insert("photo_categories").
		Columns("name").
		Values(category.Name).
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

func (r *PhotoRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	const op = "repository.PhotoRepo.DeleteCategory"

	query, args, err := r.sb.Delete("photo_categories").
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

func (r *PhotoRepo) GetCategories(ctx context.Context) ([]models.PhotoCategory, error) {
	const op = "repository.PhotoRepo.GetCategories"

	query, args, err := r.sb.Select("id", "name").
		From("photo_categories").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	categories := make([]models.PhotoCategory, 0)
	for rows.Next() {
		var c models.PhotoCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PhotoRepo) setCategories(ctx context.Context, tx pgx.Tx, photoID uuid.UUID, categoryIDs []uuid.UUID) error {
	query, args, err := r.sb.Delete("photo_category_items").
		Where(squirrel.Eq{"photo_id": photoID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return err
	}

	if len(categoryIDs) == 0 {
		return nil
	}

	builder := r.sb.Insert("photo_category_items").Columns("photo_id", "category_id")
	for _, id := range categoryIDs {
		builder = builder.Values(photoID, id)
	}

	query, args, err = builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return storageError(err)
	}

	return nil
}

// queryPhotos читает фотографии и одним запросом дозагружает их категории
func (r *PhotoRepo) queryPhotos(ctx context.Context, query string, args ...any) ([]models.Photo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	photos := make([]models.Photo, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImagePath, &p.CreatedAt, &p.CreatedBy); err != nil {
			rows.Close()
			return nil, err
		}
		photos = append(photos, p)
		ids = append(ids, p.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return photos, nil
	}

	catQuery, catArgs, err := r.sb.Select("photo_id", "category_id").
		From("photo_category_items").
		Where(squirrel.Eq{"photo_id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	catRows, err := r.db.Query(ctx, catQuery, catArgs...)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()

	byPhoto := make(map[uuid.UUID][]uuid.UUID)
	for catRows.Next() {
		var photoID, categoryID uuid.UUID
		if err := catRows.Scan(&photoID, &categoryID); err != nil {
			return nil, err
		}
		byPhoto[photoID] = append(byPhoto[photoID], categoryID)
	}

	for i := range photos {
		photos[i].CategoryIDs = byPhoto[photos[i].ID]
	}

	return photos, catRows.Err()
}

func applyPhotoFilter(b squirrel.SelectBuilder, f models.PhotoFilter) squirrel.SelectBuilder {
	if f.Title != "" {
		b = b.Where(squirrel.ILike{"p.title": "%" + f.Title + "%"})
	}
	if f.Description != "" {
		b = b.Where(squirrel.ILike{"p.description": "%" + f.Description + "%"})
	}
	if len(f.CategoryIDs) > 0 {
		b = b.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM photo_category_items pci WHERE pci.photo_id = p.id AND pci.category_id = ANY(?::uuid[]))",
			uuidArray(f.CategoryIDs),
		))
	}
	if f.CreatedFrom != nil {
		b = b.Where(squirrel.GtOrEq{"p.created_at": *f.CreatedFrom})
	}
	if f.CreatedTo != nil {
		b = b.Where(squirrel.LtOrEq{"p.created_at": *f.CreatedTo})
	}
	if len(f.CreatedBy) > 0 {
		b = b.Where(squirrel.Eq{"p.created_by": f.CreatedBy})
	}
	return b
}
