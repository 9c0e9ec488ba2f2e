package pedigree_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"
	"equestrian/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func born(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func addHorse(t *testing.T, repo *memory.HorseRepo, h models.Horse) models.Horse {
	t.Helper()

	id, err := repo.CreateHorse(context.Background(), h)
	require.NoError(t, err)
	h.ID = id
	return h
}

func link(t *testing.T, repo *memory.HorseRepo, child, parent models.Horse) {
	t.Helper()

	err := repo.AddParent(context.Background(), models.ParentEdge{
		ChildID:  child.ID,
		ParentID: parent.ID,
		Role:     models.RoleFor(parent.Sex),
	})
	require.NoError(t, err)
}

func TestValidator_ValidateDamEdge(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	foal := addHorse(t, repo, models.Horse{Name: "Foal", Sex: models.SexStallion, BirthDate: born(2015, 6, 1)})
	mare := addHorse(t, repo, models.Horse{Name: "Mare", Sex: models.SexMare, BirthDate: born(2008, 4, 10)})
	stallion := addHorse(t, repo, models.Horse{Name: "Stallion", Sex: models.SexStallion, BirthDate: born(2005, 1, 1)})
	youngMare := addHorse(t, repo, models.Horse{Name: "Young", Sex: models.SexMare, BirthDate: born(2016, 1, 1), BirthMode: models.DateYearOnly})
	deadMare := addHorse(t, repo, models.Horse{Name: "Dead", Sex: models.SexMare, DeathDate: born(2014, 3, 1)})
	unknown := addHorse(t, repo, models.Horse{Name: "Unknown", Sex: models.SexMare})

	tests := []struct {
		name    string
		child   models.Horse
		dam     models.Horse
		wantErr error
	}{
		{name: "valid", child: foal, dam: mare},
		{name: "same horse", child: mare, dam: mare, wantErr: pedigree.ErrIdentityConflict},
		{name: "stallion as dam", child: foal, dam: stallion, wantErr: pedigree.ErrRoleConflict},
		{name: "dam born after foal", child: foal, dam: youngMare, wantErr: pedigree.ErrOrdering},
		{name: "dam died before foal birth", child: foal, dam: deadMare, wantErr: pedigree.ErrOrdering},
		{name: "unknown dates skip ordering", child: foal, dam: unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDamEdge(ctx, tt.child, tt.dam)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)

			var edgeErr *pedigree.EdgeError
			require.True(t, errors.As(err, &edgeErr))
			assert.Equal(t, "dam", edgeErr.Field)
		})
	}
}

func TestValidator_YearOnlyDamBornNextYear(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	foal := addHorse(t, repo, models.Horse{Name: "Foal", Sex: models.SexMare, BirthDate: born(2020, 12, 31)})
	dam := addHorse(t, repo, models.Horse{Name: "Dam", Sex: models.SexMare, BirthDate: born(2021, 1, 1), BirthMode: models.DateYearOnly})

	err := v.ValidateDamEdge(ctx, foal, dam)
	assert.ErrorIs(t, err, pedigree.ErrOrdering)

	sameYear := addHorse(t, repo, models.Horse{Name: "Same", Sex: models.SexMare, BirthDate: born(2020, 12, 31), BirthMode: models.DateYearOnly})
	assert.NoError(t, v.ValidateDamEdge(ctx, foal, sameYear))
}

func TestValidator_DuplicateDam(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	foal := addHorse(t, repo, models.Horse{Name: "Foal", Sex: models.SexGelding})
	first := addHorse(t, repo, models.Horse{Name: "First", Sex: models.SexMare})
	second := addHorse(t, repo, models.Horse{Name: "Second", Sex: models.SexMare})

	require.NoError(t, v.ValidateDamEdge(ctx, foal, first))
	link(t, repo, foal, first)

	err := v.ValidateDamEdge(ctx, foal, second)
	assert.ErrorIs(t, err, pedigree.ErrDuplicateParent)
	assert.Contains(t, err.Error(), "First")
}

func TestValidator_ValidateSireEdge(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	foal := addHorse(t, repo, models.Horse{Name: "Foal", Sex: models.SexMare, BirthDate: born(2015, 6, 1)})
	mare := addHorse(t, repo, models.Horse{Name: "Mare", Sex: models.SexMare})
	gelding := addHorse(t, repo, models.Horse{Name: "Gelding", Sex: models.SexGelding})
	// отец может умереть до рождения жеребенка
	deadSire := addHorse(t, repo, models.Horse{Name: "Late", Sex: models.SexStallion, BirthDate: born(2000, 1, 1), DeathDate: born(2014, 10, 1)})
	youngSire := addHorse(t, repo, models.Horse{Name: "Young", Sex: models.SexStallion, BirthDate: born(2016, 1, 1)})

	assert.NoError(t, v.ValidateSireEdge(ctx, foal, deadSire))
	assert.NoError(t, v.ValidateSireEdge(ctx, foal, gelding))
	assert.ErrorIs(t, v.ValidateSireEdge(ctx, foal, mare), pedigree.ErrRoleConflict)
	assert.ErrorIs(t, v.ValidateSireEdge(ctx, foal, foal), pedigree.ErrIdentityConflict)
	assert.ErrorIs(t, v.ValidateSireEdge(ctx, foal, youngSire), pedigree.ErrOrdering)

	link(t, repo, foal, deadSire)
	assert.ErrorIs(t, v.ValidateSireEdge(ctx, foal, gelding), pedigree.ErrDuplicateParent)
}

func TestValidator_ValidateChildEdge(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	mare := addHorse(t, repo, models.Horse{Name: "Mare", Sex: models.SexMare, BirthDate: born(2010, 1, 1)})
	stallion := addHorse(t, repo, models.Horse{Name: "Stallion", Sex: models.SexStallion, BirthDate: born(2010, 1, 1)})
	foal := addHorse(t, repo, models.Horse{Name: "Foal", Sex: models.SexMare, BirthDate: born(2005, 1, 1)})

	for _, parent := range []models.Horse{mare, stallion} {
		err := v.ValidateChildEdge(ctx, parent, foal)
		assert.ErrorIs(t, err, pedigree.ErrOrdering)

		var edgeErr *pedigree.EdgeError
		require.True(t, errors.As(err, &edgeErr))
		assert.Equal(t, "children", edgeErr.Field)
	}

	assert.ErrorIs(t, v.ValidateChildEdge(ctx, mare, mare), pedigree.ErrIdentityConflict)
}

// A - кобыла 2010 года, B - лошадь 2015 года с точностью до года.
// A становится матерью B, после чего кобыла C не может стать второй матерью.
func TestValidator_ParentsScenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewHorseRepo()
	v := pedigree.NewValidator(repo)

	a := addHorse(t, repo, models.Horse{Name: "A", Sex: models.SexMare, BirthDate: born(2010, 1, 1), BirthMode: models.DateYearOnly})
	b := addHorse(t, repo, models.Horse{Name: "B", Sex: models.SexStallion, BirthDate: born(2015, 1, 1), BirthMode: models.DateYearOnly})
	c := addHorse(t, repo, models.Horse{Name: "C", Sex: models.SexMare, BirthDate: born(2016, 1, 1), BirthMode: models.DateYearOnly})

	require.NoError(t, v.ValidateDamEdge(ctx, b, a))
	link(t, repo, b, a)

	assert.ErrorIs(t, v.ValidateDamEdge(ctx, b, c), pedigree.ErrDuplicateParent)
	assert.ErrorIs(t, v.ValidateChildEdge(ctx, c, b), pedigree.ErrDuplicateParent)
	assert.ErrorIs(t, v.ValidateDamEdge(ctx, b, b), pedigree.ErrIdentityConflict)

	dam, err := repo.ParentByRole(ctx, b.ID, models.RoleDam)
	require.NoError(t, err)
	require.NotNil(t, dam)
	assert.Equal(t, a.ID, dam.ID)

	missing, err := repo.ParentByRole(ctx, b.ID, models.RoleSire)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
