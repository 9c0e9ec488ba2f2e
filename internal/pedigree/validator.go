package pedigree

import (
	"context"
	"errors"
	"fmt"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
)

// ParentLookup возвращает текущего родителя лошади в роли role или nil.
// Запрос должен идти в хранилище, а не в кэш.
type ParentLookup interface {
	ParentByRole(ctx context.Context, childID uuid.UUID, role models.ParentRole) (*models.Horse, error)
}

// Validator проверяет допустимость ребра родитель -> ребенок до записи.
// Методы ничего не изменяют.
type Validator struct {
	parents ParentLookup
}

func NewValidator(parents ParentLookup) *Validator {
	return &Validator{parents: parents}
}

// ValidateDamEdge проверяет, может ли dam стать матерью child
func (v *Validator) ValidateDamEdge(ctx context.Context, child, dam models.Horse) error {
	const field = "dam"

	if child.ID == dam.ID {
		return edgeError(ErrIdentityConflict, field, "dam and horse cannot be the same horse")
	}
	if !dam.Sex.IsDam() {
		return edgeError(ErrRoleConflict, field, "dam cannot be a stallion or a gelding")
	}

	if err := v.checkVacant(ctx, child, models.RoleDam, field); err != nil {
		return err
	}

	if cmp, ok := CompareDates(child.Birth(), dam.Birth()); ok && cmp < 0 {
		return edgeError(ErrOrdering, field, "dam birth date cannot be later than the horse birth date")
	}
	if cmp, ok := CompareDates(dam.Death(), child.Birth()); ok && cmp < 0 {
		return edgeError(ErrOrdering, field, "dam death date cannot be earlier than the horse birth date")
	}

	return nil
}

// ValidateSireEdge проверяет, может ли sire стать отцом child.
// Дата смерти отца не проверяется.
func (v *Validator) ValidateSireEdge(ctx context.Context, child, sire models.Horse) error {
	const field = "sire"

	if child.ID == sire.ID {
		return edgeError(ErrIdentityConflict, field, "sire and horse cannot be the same horse")
	}
	if sire.Sex.IsDam() {
		return edgeError(ErrRoleConflict, field, "sire cannot be a mare")
	}

	if err := v.checkVacant(ctx, child, models.RoleSire, field); err != nil {
		return err
	}

	if cmp, ok := CompareDates(child.Birth(), sire.Birth()); ok && cmp < 0 {
		return edgeError(ErrOrdering, field, "sire birth date cannot be later than the horse birth date")
	}

	return nil
}

// ValidateChildEdge выбирает проверку по полу родителя
func (v *Validator) ValidateChildEdge(ctx context.Context, parent, child models.Horse) error {
	var err error
	if parent.Sex.IsDam() {
		err = v.ValidateDamEdge(ctx, child, parent)
	} else {
		err = v.ValidateSireEdge(ctx, child, parent)
	}

	var edgeErr *EdgeError
	if errors.As(err, &edgeErr) {
		edgeErr.Field = "children"
	}
	return err
}

func (v *Validator) checkVacant(ctx context.Context, child models.Horse, role models.ParentRole, field string) error {
	current, err := v.parents.ParentByRole(ctx, child.ID, role)
	if err != nil {
		return fmt.Errorf("pedigree.Validator.checkVacant: %w", err)
	}
	if current != nil {
		return edgeError(ErrDuplicateParent, field, fmt.Sprintf("%s of %s is already set: %s", role, child.Name, current.Name))
	}
	return nil
}
