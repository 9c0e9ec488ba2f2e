package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equestrian/internal/domain/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lib/pq"
)

var horseColumns = []string{
	"h.id",
	"h.name",
	"h.sex",
	"h.kind",
	"h.bdate",
	"h.bdate_mode",
	"h.ddate",
	"h.ddate_mode",
	"h.breed_id",
	"h.owner_id",
	"h.description",
	"h.created_at",
	"h.created_by",
}

type HorseRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewHorseRepo(db *pgxpool.Pool) *HorseRepo {
	return &HorseRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateHorse сохраняет лошадь вместе со списком фотографий
func (r *HorseRepo) CreateHorse(ctx context.Context, horse models.Horse) (uuid.UUID, error) {
	const op = "repository.HorseRepo.CreateHorse"

	if horse.ID == uuid.Nil {
		horse.ID = uuid.New()
	}
	if horse.CreatedAt.IsZero() {
		horse.CreatedAt = time.Now().UTC()
	}

	query, args, err := r.sb.Insert("horses").
		Columns(
			"id",
			"name",
			"sex",
			"kind",
			"bdate",
			"bdate_mode",
			"ddate",
			"ddate_mode",
			"breed_id",
			"owner_id",
			"description",
			"created_at",
			"created_by",
		).
		Values(
			horse.ID,
			horse.Name,
			int16(horse.Sex),
			int16(horse.Kind),
			horse.BirthDate,
			int16(horse.BirthMode),
			horse.DeathDate,
			int16(horse.DeathMode),
			horse.BreedID,
			horse.OwnerID,
			horse.Description,
			horse.CreatedAt,
			horse.CreatedBy,
		).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, storageError(err))
	}

	if err := r.insertPhotos(ctx, tx, horse.ID, horse.PhotoIDs); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return horse.ID, nil
}

// UpdateHorse обновляет данные лошади. Фотографии меняются через SetHorsePhotos.
func (r *HorseRepo) UpdateHorse(ctx context.Context, horse models.Horse) error {
	const op = "repository.HorseRepo.UpdateHorse"

	query, args, err := r.sb.Update("horses").
		Set("name", horse.Name).
		Set("sex", int16(horse.Sex)).
		Set("kind", int16(horse.Kind)).
		Set("bdate", horse.BirthDate).
		Set("bdate_mode", int16(horse.BirthMode)).
		Set("ddate", horse.DeathDate).
		Set("ddate_mode", int16(horse.DeathMode)).
		Set("breed_id", horse.BreedID).
		Set("owner_id", horse.OwnerID).
		Set("description", horse.Description).
		Where(squirrel.Eq{"id": horse.ID}).
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

// DeleteHorse удаляет лошадь, ребра родословной удаляются каскадом
func (r *HorseRepo) DeleteHorse(ctx context.Context, id uuid.UUID) error {
	const op = "repository.HorseRepo.DeleteHorse"

	query, args, err := r.sb.Delete("horses").
		Where(squirrel.Eq{"id": id}).
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

func (r *HorseRepo) GetHorseByID(ctx context.Context, id uuid.UUID) (models.Horse, error) {
	const op = "repository.HorseRepo.GetHorseByID"

	query, args, err := r.sb.Select(horseColumns...).
		From("horses h").
		Where(squirrel.Eq{"h.id": id}).
		ToSql()
	if err != nil {
		return models.Horse{}, fmt.Errorf("%s: %w", op, err)
	}

	horse, err := scanHorse(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Horse{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	photos, err := r.photosOf(ctx, []uuid.UUID{id})
	if err != nil {
		return models.Horse{}, fmt.Errorf("%s: %w", op, err)
	}
	horse.PhotoIDs = photos[id]

	return horse, nil
}

// GetHorses возвращает страницу лошадей, упорядоченных по имени, и общее число найденных
func (r *HorseRepo) GetHorses(ctx context.Context, filter models.HorseFilter) ([]models.Horse, int, error) {
	const op = "repository.HorseRepo.GetHorses"

	countQuery, countArgs, err := applyHorseFilter(r.sb.Select("COUNT(*)").From("horses h"), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	builder := applyHorseFilter(r.sb.Select(horseColumns...).From("horses h"), filter).
		OrderBy("h.name", "h.id")
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

	horses, err := r.queryHorses(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	ids := make([]uuid.UUID, 0, len(horses))
	for _, h := range horses {
		ids = append(ids, h.ID)
	}
	photos, err := r.photosOf(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	for i := range horses {
		horses[i].PhotoIDs = photos[horses[i].ID]
	}

	return horses, total, nil
}

// SetHorsePhotos заменяет список фотографий лошади
func (r *HorseRepo) SetHorsePhotos(ctx context.Context, horseID uuid.UUID, photoIDs []uuid.UUID) error {
	const op = "repository.HorseRepo.SetHorsePhotos"

	query, args, err := r.sb.Delete("horse_photos").
		Where(squirrel.Eq{"horse_id": horseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.insertPhotos(ctx, tx, horseID, photoIDs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return tx.Commit(ctx)
}

// AddParent записывает ребро. Повторная мать или повторный отец дают storage.ErrExists.
func (r *HorseRepo) AddParent(ctx context.Context, edge models.ParentEdge) error {
	const op = "repository.HorseRepo.AddParent"

	query, args, err := r.sb.Insert("horse_parents").
		Columns("child_id", "parent_id", "role").
		Values(edge.ChildID, edge.ParentID, int16(edge.Role)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, storageError(err))
	}

	return nil
}

func (r *HorseRepo) RemoveParent(ctx context.Context, childID, parentID uuid.UUID) error {
	const op = "repository.HorseRepo.RemoveParent"

	query, args, err := r.sb.Delete("horse_parents").
		Where(squirrel.Eq{"child_id": childID, "parent_id": parentID}).
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

func (r *HorseRepo) ChildrenOf(ctx context.Context, parentID uuid.UUID) ([]models.Horse, error) {
	const op = "repository.HorseRepo.ChildrenOf"

	query, args, err := r.sb.Select(horseColumns...).
		From("horse_parents hp").
		Join("horses h ON h.id = hp.child_id").
		Where(squirrel.Eq{"hp.parent_id": parentID}).
		OrderBy("h.name", "h.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	children, err := r.queryHorses(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return children, nil
}

// ParentByRole читает родителя напрямую из таблицы ребер, минуя кэш
func (r *HorseRepo) ParentByRole(ctx context.Context, childID uuid.UUID, role models.ParentRole) (*models.Horse, error) {
	const op = "repository.HorseRepo.ParentByRole"

	query, args, err := r.sb.Select(horseColumns...).
		From("horse_parents hp").
		Join("horses h ON h.id = hp.parent_id").
		Where(squirrel.Eq{"hp.child_id": childID, "hp.role": int16(role)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	parent, err := scanHorse(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &parent, nil
}

// ParentsOf одним запросом возвращает родителей всех переданных лошадей
func (r *HorseRepo) ParentsOf(ctx context.Context, childIDs []uuid.UUID) (map[uuid.UUID][]models.Horse, error) {
	const op = "repository.HorseRepo.ParentsOf"

	out := make(map[uuid.UUID][]models.Horse, len(childIDs))
	if len(childIDs) == 0 {
		return out, nil
	}

	query, args, err := r.sb.Select(append([]string{"hp.child_id"}, horseColumns...)...).
		From("horse_parents hp").
		Join("horses h ON h.id = hp.parent_id").
		Where(squirrel.Eq{"hp.child_id": childIDs}).
		OrderBy("h.name", "h.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var childID uuid.UUID
		var h models.Horse
		if err := rows.Scan(append([]any{&childID}, horseFields(&h)...)...); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out[childID] = append(out[childID], h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (r *HorseRepo) HorsesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Horse, error) {
	const op = "repository.HorseRepo.HorsesByIDs"

	out := make(map[uuid.UUID]models.Horse, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := r.sb.Select(horseColumns...).
		From("horses h").
		Where(squirrel.Eq{"h.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	horses, err := r.queryHorses(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, h := range horses {
		out[h.ID] = h
	}

	return out, nil
}

func (r *HorseRepo) insertPhotos(ctx context.Context, tx pgx.Tx, horseID uuid.UUID, photoIDs []uuid.UUID) error {
	if len(photoIDs) == 0 {
		return nil
	}

	builder := r.sb.Insert("horse_photos").Columns("horse_id", "photo_id")
	for _, id := range photoIDs {
		builder = builder.Values(horseID, id)
	}

	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return storageError(err)
	}
	return nil
}

func (r *HorseRepo) photosOf(ctx context.Context, horseIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(horseIDs))
	if len(horseIDs) == 0 {
		return out, nil
	}

	query, args, err := r.sb.Select("horse_id", "photo_id").
		From("horse_photos").
		Where(squirrel.Eq{"horse_id": horseIDs}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var horseID, photoID uuid.UUID
		if err := rows.Scan(&horseID, &photoID); err != nil {
			return nil, err
		}
		out[horseID] = append(out[horseID], photoID)
	}

	return out, rows.Err()
}

func (r *HorseRepo) queryHorses(ctx context.Context, query string, args ...any) ([]models.Horse, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	horses := make([]models.Horse, 0)
	for rows.Next() {
		var h models.Horse
		if err := rows.Scan(horseFields(&h)...); err != nil {
			return nil, err
		}
		horses = append(horses, h)
	}

	return horses, rows.Err()
}

func applyHorseFilter(b squirrel.SelectBuilder, f models.HorseFilter) squirrel.SelectBuilder {
	if f.Name != "" {
		b = b.Where(squirrel.ILike{"h.name": "%" + f.Name + "%"})
	}
	if len(f.Sexes) > 0 {
		sexes := make([]int64, 0, len(f.Sexes))
		for _, s := range f.Sexes {
			sexes = append(sexes, int64(s))
		}
		b = b.Where("h.sex = ANY(?::smallint[])", pq.Array(sexes))
	}
	if f.Kind != nil {
		b = b.Where(squirrel.Eq{"h.kind": int16(*f.Kind)})
	}
	if f.BreedID != nil {
		b = b.Where(squirrel.Eq{"h.breed_id": *f.BreedID})
	}
	if f.OwnerID != nil {
		b = b.Where(squirrel.Eq{"h.owner_id": *f.OwnerID})
	}
	if f.BornFrom != nil {
		b = b.Where(squirrel.GtOrEq{"h.bdate": *f.BornFrom})
	}
	if f.BornTo != nil {
		b = b.Where(squirrel.LtOrEq{"h.bdate": *f.BornTo})
	}
	if f.ExcludeID != nil {
		b = b.Where(squirrel.NotEq{"h.id": *f.ExcludeID})
	}
	return b
}

func horseFields(h *models.Horse) []any {
	return []any{
		&h.ID,
		&h.Name,
		&h.Sex,
		&h.Kind,
		&h.BirthDate,
		&h.BirthMode,
		&h.DeathDate,
		&h.DeathMode,
		&h.BreedID,
		&h.OwnerID,
		&h.Description,
		&h.CreatedAt,
		&h.CreatedBy,
	}
}

func scanHorse(row pgx.Row) (models.Horse, error) {
	var h models.Horse
	err := row.Scan(horseFields(&h)...)
	return h, err
}
