package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"
	horsesvc "equestrian/internal/services/horse_service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFakeHorseIsValid(t *testing.T) {
	f := gofakeit.New(42)
	v := validator.New()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dead := 0

	for i := 0; i < 100; i++ {
		req := fakeHorse(f, now)
		require.NoError(t, v.Struct(req))

		h, err := req.ToDomain()
		require.NoError(t, err)
		assert.True(t, h.Sex.Valid())
		assert.True(t, h.BirthMode.Valid())
		require.NotNil(t, h.BirthDate)
		assert.False(t, h.BirthDate.After(now))
		if h.DeathDate != nil {
			dead++
			assert.False(t, h.DeathDate.Before(*h.BirthDate))
		}
	}

	// примерно каждая пятая лошадь получает дату смерти
	assert.Greater(t, dead, 0)
	assert.Less(t, dead, 50)
}

type fakeAssigner struct {
	horses     []horsesvc.HorseDetails
	candidates map[horsesvc.Mode][]map[string]any
	reject     map[uuid.UUID]bool
	attached   map[uuid.UUID][]horsesvc.Mode
	failWith   error
}

func (f *fakeAssigner) ListHorses(context.Context, models.HorseFilter) ([]horsesvc.HorseDetails, int, error) {
	return f.horses, len(f.horses), nil
}

func (f *fakeAssigner) Candidates(_ context.Context, _ uuid.UUID, mode horsesvc.Mode) ([]map[string]any, error) {
	return f.candidates[mode], nil
}

func (f *fakeAssigner) AttachPedigree(_ context.Context, id uuid.UUID, mode horsesvc.Mode, _ []uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.reject[id] {
		return &pedigree.EdgeError{Kind: pedigree.ErrOrdering, Field: string(mode), Message: "parent is younger"}
	}
	f.attached[id] = append(f.attached[id], mode)
	return nil
}

func TestAssignPedigree(t *testing.T) {
	damID, sireID := uuid.New(), uuid.New()
	foalA, foalB := uuid.New(), uuid.New()

	newAssigner := func() *fakeAssigner {
		return &fakeAssigner{
			horses: []horsesvc.HorseDetails{
				{Horse: models.Horse{ID: foalA, Name: "A"}},
				{Horse: models.Horse{ID: foalB, Name: "B"}},
			},
			candidates: map[horsesvc.Mode][]map[string]any{
				horsesvc.ModeDam:  {{"id": damID}},
				horsesvc.ModeSire: {{"id": sireID}},
			},
			reject:   map[uuid.UUID]bool{},
			attached: map[uuid.UUID][]horsesvc.Mode{},
		}
	}

	t.Run("every parent with probability one", func(t *testing.T) {
		a := newAssigner()
		attached, rejected, err := assignPedigree(context.Background(), a, gofakeit.New(1), 1)

		require.NoError(t, err)
		assert.Equal(t, 4, attached)
		assert.Zero(t, rejected)
		assert.ElementsMatch(t, []horsesvc.Mode{horsesvc.ModeDam, horsesvc.ModeSire}, a.attached[foalA])
	})

	t.Run("nothing with probability zero", func(t *testing.T) {
		a := newAssigner()
		attached, rejected, err := assignPedigree(context.Background(), a, gofakeit.New(1), 0)

		require.NoError(t, err)
		assert.Zero(t, attached)
		assert.Zero(t, rejected)
	})

	t.Run("validator rejections are skipped", func(t *testing.T) {
		a := newAssigner()
		a.reject[foalB] = true

		attached, rejected, err := assignPedigree(context.Background(), a, gofakeit.New(1), 1)

		require.NoError(t, err)
		assert.Equal(t, 2, attached)
		assert.Equal(t, 2, rejected)
		assert.Empty(t, a.attached[foalB])
	})

	t.Run("storage errors stop the run", func(t *testing.T) {
		a := newAssigner()
		a.failWith = errors.New("connection reset")

		_, _, err := assignPedigree(context.Background(), a, gofakeit.New(1), 1)
		require.Error(t, err)
	})
}
