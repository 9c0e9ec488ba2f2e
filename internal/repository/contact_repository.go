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

type ContactRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewContactRepo(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ContactRepo) CreateGroup(ctx context.Context, group models.ContactsGroup) (uuid.UUID, error) {
	const op = "repository.ContactRepo.CreateGroup"

	query, args, err := r.sb.Insert("contacts_groups").
		Columns("name").
		Values(group.Name).
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

func (r *ContactRepo) UpdateGroup(ctx context.Context, group models.ContactsGroup) error {
	const op = "repository.ContactRepo.UpdateGroup"

	query, args, err := r.sb.Update("contacts_groups").
		Set("name", group.Name).
		Where(squirrel.Eq{"id": group.ID}).
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

// DeleteGroup удаляет группу вместе с ее контактами
func (r *ContactRepo) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ContactRepo.DeleteGroup"

	query, args, err := r.sb.Delete("contacts_groups").
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

func (r *ContactRepo) GetGroupByID(ctx context.Context, id uuid.UUID) (models.ContactsGroup, error) {
	const op = "repository.ContactRepo.GetGroupByID"

	query, args, err := r.sb.Select("id", "name").
		From("contacts_groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.ContactsGroup{}, fmt.Errorf("%s: %w", op, err)
	}

	var g models.ContactsGroup
	if err := r.db.QueryRow(ctx, query, args...).Scan(&g.ID, &g.Name); err != nil {
		return models.ContactsGroup{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return g, nil
}

func (r *ContactRepo) GetGroups(ctx context.Context) ([]models.ContactsGroup, error) {
	const op = "repository.ContactRepo.GetGroups"

	query, args, err := r.sb.Select("id", "name").
		From("contacts_groups").
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

	groups := make([]models.ContactsGroup, 0)
	for rows.Next() {
		var g models.ContactsGroup
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (r *ContactRepo) CreateContact(ctx context.Context, contact models.Contact) (uuid.UUID, error) {
	const op = "repository.ContactRepo.CreateContact"

	query, args, err := r.sb.Insert("contacts").
		Columns("main_title", "subtitle", "phone_numbers", "group_id", "priority").
		Values(contact.MainTitle, contact.Subtitle, pq.Array(phones(contact.PhoneNumbers)), contact.GroupID, contact.Priority).
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

func (r *ContactRepo) UpdateContact(ctx context.Context, contact models.Contact) error {
	const op = "repository.ContactRepo.UpdateContact"

	query, args, err := r.sb.Update("contacts").
		Set("main_title", contact.MainTitle).
		Set("subtitle", contact.Subtitle).
		Set("phone_numbers", pq.Array(phones(contact.PhoneNumbers))).
		Set("group_id", contact.GroupID).
		Set("priority", contact.Priority).
		Where(squirrel.Eq{"id": contact.ID}).
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

func (r *ContactRepo) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "repository.ContactRepo.DeleteContact"

	query, args, err := r.sb.Delete("contacts").
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

func (r *ContactRepo) GetContactByID(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	const op = "repository.ContactRepo.GetContactByID"

	query, args, err := r.sb.Select("id", "main_title", "subtitle", "phone_numbers", "group_id", "priority").
		From("contacts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, err)
	}

	var c models.Contact
	err = r.db.QueryRow(ctx, query, args...).Scan(&c.ID, &c.MainTitle, &c.Subtitle, pq.Array(&c.PhoneNumbers), &c.GroupID, &c.Priority)
	if err != nil {
		return models.Contact{}, fmt.Errorf("%s: %w", op, storageError(err))
	}

	return c, nil
}

// GetContacts возвращает контакты, упорядоченные по группе, приоритету и заголовку
func (r *ContactRepo) GetContacts(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	const op = "repository.ContactRepo.GetContacts"

	builder := r.sb.Select("c.id", "c.main_title", "c.subtitle", "c.phone_numbers", "c.group_id", "c.priority").
		From("contacts c").
		Join("contacts_groups g ON g.id = c.group_id").
		OrderBy("g.name", "c.priority", "c.main_title")
	if filter.MainTitle != "" {
		builder = builder.Where(squirrel.ILike{"c.main_title": "%" + filter.MainTitle + "%"})
	}
	if filter.Subtitle != "" {
		builder = builder.Where(squirrel.ILike{"c.subtitle": "%" + filter.Subtitle + "%"})
	}
	if len(filter.GroupIDs) > 0 {
		builder = builder.Where("c.group_id = ANY(?::uuid[])", uuidArray(filter.GroupIDs))
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

	contacts := make([]models.Contact, 0)
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.MainTitle, &c.Subtitle, pq.Array(&c.PhoneNumbers), &c.GroupID, &c.Priority); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, c)
	}

	return contacts, rows.Err()
}
