package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"equestrian/internal/app"
	"equestrian/internal/domain/models"
	"equestrian/internal/pedigree"
	horsesvc "equestrian/internal/services/horse_service"
	"equestrian/internal/transport/http/dto"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	horseCount  int
	seed        int64
	probability float64

	breedNames = []string{"Arabian", "Akhal-Teke", "Orlov Trotter", "Thoroughbred", "Haflinger", "Friesian"}
)

var generateHorsesCmd = &cobra.Command{
	Use:   "generate-horses",
	Short: "Create horses with random names, dates and breeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		faker := gofakeit.New(seed)

		return withApp(ctx, func(a *app.App) error {
			for i := 0; i < horseCount; i++ {
				req := fakeHorse(faker, time.Now())
				id, err := a.Horses.CreateHorse(ctx, req, nil)
				if err != nil {
					return fmt.Errorf("horse %d: %w", i+1, err)
				}
				log.Debug("horse generated", slog.String("horse_id", id.String()), slog.String("name", req.Name))
			}

			log.Info("horses generated", slog.Int("count", horseCount))
			return nil
		})
	},
}

var setPedigreeCmd = &cobra.Command{
	Use:   "set-pedigree",
	Short: "Assign random dams and sires to existing horses",
	Long: `For every horse picks a random dam and sire among the candidates the API would offer.
Edges rejected by the pedigree validator are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		faker := gofakeit.New(seed)

		return withApp(ctx, func(a *app.App) error {
			attached, rejected, err := assignPedigree(ctx, a.Horses, faker, probability)
			if err != nil {
				return err
			}

			log.Info("pedigree assigned", slog.Int("attached", attached), slog.Int("rejected", rejected))
			return nil
		})
	},
}

func init() {
	generateHorsesCmd.Flags().IntVarP(&horseCount, "count", "n", 50, "number of horses")
	generateHorsesCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for a random one")

	setPedigreeCmd.Flags().Float64VarP(&probability, "probability", "p", 0.7, "chance that a horse gets each parent")
	setPedigreeCmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for a random one")
}

func fakeHorse(f *gofakeit.Faker, now time.Time) dto.CreateHorseRequest {
	sex := int16(f.IntRange(int(models.SexMare), int(models.SexGelding)))
	breed := f.RandomString(breedNames)

	name := fmt.Sprintf("%s %s", f.Adjective(), f.FirstName())
	if len(name) > 50 {
		name = name[:50]
	}

	description := f.Sentence(12)
	if len(description) > 500 {
		description = description[:500]
	}

	birth := f.DateRange(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), now)
	bdate := birth.Format(dto.DateLayout)

	req := dto.CreateHorseRequest{
		Name:        name,
		Sex:         &sex,
		Kind:        int16(f.IntRange(int(models.KindHorse), int(models.KindPony))),
		BirthDate:   &bdate,
		BirthMode:   int16(f.IntRange(int(models.DateFull), int(models.DateYearMonth))),
		Breed:       &breed,
		Description: description,
	}

	if f.Float64Range(0, 1) < 0.2 {
		death := f.DateRange(birth, now)
		ddate := death.Format(dto.DateLayout)
		req.DeathDate = &ddate
	}

	return req
}

type pedigreeAssigner interface {
	ListHorses(ctx context.Context, filter models.HorseFilter) ([]horsesvc.HorseDetails, int, error)
	Candidates(ctx context.Context, id uuid.UUID, mode horsesvc.Mode) ([]map[string]any, error)
	AttachPedigree(ctx context.Context, id uuid.UUID, mode horsesvc.Mode, pedHorses []uuid.UUID) error
}

// assignPedigree привязывает случайных родителей через те же проверки, что и API
func assignPedigree(ctx context.Context, horses pedigreeAssigner, f *gofakeit.Faker, p float64) (attached, rejected int, err error) {
	items, _, err := horses.ListHorses(ctx, models.HorseFilter{})
	if err != nil {
		return 0, 0, err
	}

	for _, item := range items {
		for _, mode := range []horsesvc.Mode{horsesvc.ModeDam, horsesvc.ModeSire} {
			if f.Float64Range(0, 1) >= p {
				continue
			}

			candidates, err := horses.Candidates(ctx, item.Horse.ID, mode)
			if err != nil {
				return attached, rejected, err
			}
			if len(candidates) == 0 {
				continue
			}

			parentID, ok := candidates[f.IntRange(0, len(candidates)-1)]["id"].(uuid.UUID)
			if !ok {
				continue
			}

			err = horses.AttachPedigree(ctx, item.Horse.ID, mode, []uuid.UUID{parentID})

			var edgeErr *pedigree.EdgeError
			switch {
			case err == nil:
				attached++
			case errors.As(err, &edgeErr):
				rejected++
				log.Debug("edge rejected", slog.String("horse", item.Horse.Name), slog.String("reason", edgeErr.Message))
			default:
				return attached, rejected, err
			}
		}
	}

	return attached, rejected, nil
}
