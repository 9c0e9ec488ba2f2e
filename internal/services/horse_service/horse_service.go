package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/metrics"
	"equestrian/internal/pedigree"
	"equestrian/internal/repository"
	"equestrian/internal/storage"
	"equestrian/internal/transport/http/dto"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInputConflict = errors.New("input conflict")
	ErrInvalidMode   = errors.New("mode must be one of dam, sire, children")
)

// InputError ошибка данных запроса, привязанная к полю
type InputError struct {
	Kind    error
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Kind
}

func invalid(field, message string) *InputError {
	return &InputError{Kind: ErrInvalidInput, Field: field, Message: message}
}

// Mode часть родословной, с которой работает запрос
type Mode string

const (
	ModeDam      Mode = "dam"
	ModeSire     Mode = "sire"
	ModeChildren Mode = "children"
)

// ParseMode принимает также старые имена mother и father
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(raw) {
	case "dam", "mother":
		return ModeDam, nil
	case "sire", "father":
		return ModeSire, nil
	case "children":
		return ModeChildren, nil
	default:
		return "", ErrInvalidMode
	}
}

// HorseDetails лошадь со связанными записями для ответа API
type HorseDetails struct {
	Horse    models.Horse
	Breed    *models.Breed
	Owner    *models.HorseOwner
	Photos   []models.Photo
	Pedigree map[string]any
	Children []map[string]any
}

type HorseService struct {
	log       *slog.Logger
	horses    repository.HorseRepository
	breeds    repository.BreedRepository
	owners    repository.OwnerRepository
	photos    repository.PhotoRepository
	tree      *pedigree.TreeBuilder
	validator *pedigree.Validator
	locker    *pedigree.KeyedLocker
	now       func() time.Time
}

func NewHorseService(
	log *slog.Logger,
	horses repository.HorseRepository,
	breeds repository.BreedRepository,
	owners repository.OwnerRepository,
	photos repository.PhotoRepository,
	tree *pedigree.TreeBuilder,
	locker *pedigree.KeyedLocker,
) *HorseService {
	return &HorseService{
		log:       log,
		horses:    horses,
		breeds:    breeds,
		owners:    owners,
		photos:    photos,
		tree:      tree,
		validator: pedigree.NewValidator(horses),
		locker:    locker,
		now:       time.Now,
	}
}

func (s *HorseService) CreateHorse(ctx context.Context, req dto.CreateHorseRequest, createdBy *uuid.UUID) (uuid.UUID, error) {
	const op = "services.HorseService.CreateHorse"

	log := s.log.With(
		slog.String("op", op),
		slog.String("name", req.Name),
	)

	horse, err := req.ToDomain()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, invalid("bdate", err.Error()))
	}
	horse.CreatedBy = createdBy

	if err := s.checkHorse(ctx, horse); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	breedID, _, err := s.resolveBreed(ctx, req.Breed)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	horse.BreedID = breedID

	if err := s.checkPhotos(ctx, req.PhotoIDs); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(horse.PhotoIDs) > 0 {
		horse.PhotoIDs = unique(horse.PhotoIDs)
	}

	id, err := s.horses.CreateHorse(ctx, horse)
	if err != nil {
		log.Error("failed to create horse", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("horse created", slog.String("horse_id", id.String()))

	return id, nil
}

func (s *HorseService) UpdateHorse(ctx context.Context, id uuid.UUID, req dto.UpdateHorseRequest) error {
	const op = "services.HorseService.UpdateHorse"

	log := s.log.With(
		slog.String("op", op),
		slog.String("horse_id", id.String()),
	)

	// смена пола меняет роль лошади в ребрах ее детей
	unlock := s.locker.Lock(id)
	defer unlock()

	current, err := s.horses.GetHorseByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	horse, err := req.Apply(current)
	if err != nil {
		return fmt.Errorf("%s: %w", op, invalid("bdate", err.Error()))
	}

	if err := s.checkHorse(ctx, horse); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if models.RoleFor(horse.Sex) != models.RoleFor(current.Sex) {
		children, err := s.horses.ChildrenOf(ctx, id)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if len(children) > 0 {
			return fmt.Errorf("%s: %w", op, &pedigree.EdgeError{
				Kind:    pedigree.ErrRoleConflict,
				Field:   "sex",
				Message: "cannot change sex of a horse that is already a parent",
			})
		}
	}

	breedID, reset, err := s.resolveBreed(ctx, req.Breed)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if breedID != nil || reset {
		horse.BreedID = breedID
	}

	if err := s.horses.UpdateHorse(ctx, horse); err != nil {
		log.Error("failed to update horse", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if req.PhotoIDs != nil {
		if err := s.updatePhotos(ctx, id, req.PhotoIDs, req.PhotoAction); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	log.Info("horse updated")

	return nil
}

func (s *HorseService) DeleteHorse(ctx context.Context, id uuid.UUID) error {
	const op = "services.HorseService.DeleteHorse"

	log := s.log.With(
		slog.String("op", op),
		slog.String("horse_id", id.String()),
	)

	affected, unlock, err := s.lockWithChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	if err := s.horses.DeleteHorse(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.tree.Invalidate(ctx, affected...); err != nil {
		log.Error("failed to invalidate pedigree cache", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("horse deleted", slog.Int("children", len(affected)-1))

	return nil
}

// lockWithChildren блокирует лошадь вместе с ее детьми. Если между чтением детей
// и захватом блокировок появился новый ребенок, набор перечитывается.
func (s *HorseService) lockWithChildren(ctx context.Context, id uuid.UUID) ([]uuid.UUID, func(), error) {
	locked := []uuid.UUID{id}
	for {
		unlock := s.locker.Lock(locked...)

		children, err := s.horses.ChildrenOf(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}

		affected := []uuid.UUID{id}
		for _, c := range children {
			affected = append(affected, c.ID)
		}
		if containsAll(locked, affected) {
			return affected, unlock, nil
		}

		unlock()
		locked = affected
	}
}

func containsAll(set, ids []uuid.UUID) bool {
	index := make(map[uuid.UUID]struct{}, len(set))
	for _, id := range set {
		index[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := index[id]; !ok {
			return false
		}
	}
	return true
}

// GetHorse возвращает лошадь. Если pedigree содержит число, добавляются дерево предков и дети.
func (s *HorseService) GetHorse(ctx context.Context, id uuid.UUID, pedigreeDepth string) (HorseDetails, error) {
	const op = "services.HorseService.GetHorse"

	horse, err := s.horses.GetHorseByID(ctx, id)
	if err != nil {
		return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	details := HorseDetails{Horse: horse}

	if horse.BreedID != nil {
		breed, err := s.breeds.GetBreedByID(ctx, *horse.BreedID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
		}
		if err == nil {
			details.Breed = &breed
		}
	}

	if horse.OwnerID != nil {
		owner, err := s.owners.GetOwnerByID(ctx, *horse.OwnerID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
		}
		if err == nil {
			details.Owner = &owner
		}
	}

	if len(horse.PhotoIDs) > 0 {
		details.Photos, err = s.photos.GetPhotosByIDs(ctx, horse.PhotoIDs)
		if err != nil {
			return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	depth, ok := pedigree.ParseDepth(pedigreeDepth)
	if !ok {
		return details, nil
	}

	project, err := s.summaryProjection(ctx)
	if err != nil {
		return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	details.Pedigree, err = s.tree.Build(ctx, horse, depth, project)
	if err != nil {
		return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	children, err := s.horses.ChildrenOf(ctx, id)
	if err != nil {
		return HorseDetails{}, fmt.Errorf("%s: %w", op, err)
	}
	details.Children = make([]map[string]any, 0, len(children))
	for _, c := range children {
		details.Children = append(details.Children, project(c))
	}

	return details, nil
}

func (s *HorseService) ListHorses(ctx context.Context, filter models.HorseFilter) ([]HorseDetails, int, error) {
	const op = "services.HorseService.ListHorses"

	horses, total, err := s.horses.GetHorses(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	breeds, err := s.breedIndex(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	owners, err := s.owners.GetOwners(ctx, "", nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	ownerIndex := make(map[uuid.UUID]models.HorseOwner, len(owners))
	for _, o := range owners {
		ownerIndex[o.ID] = o
	}

	items := make([]HorseDetails, 0, len(horses))
	for _, h := range horses {
		item := HorseDetails{Horse: h}
		if h.BreedID != nil {
			if b, ok := breeds[*h.BreedID]; ok {
				item.Breed = &b
			}
		}
		if h.OwnerID != nil {
			if o, ok := ownerIndex[*h.OwnerID]; ok {
				item.Owner = &o
			}
		}
		items = append(items, item)
	}

	return items, total, nil
}

// Candidates возвращает лошадей, которых можно привязать к родословной в режиме mode
func (s *HorseService) Candidates(ctx context.Context, id uuid.UUID, mode Mode) ([]map[string]any, error) {
	const op = "services.HorseService.Candidates"

	horse, err := s.horses.GetHorseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := models.HorseFilter{ExcludeID: &horse.ID}

	switch mode {
	case ModeDam, ModeSire:
		if mode == ModeDam {
			filter.Sexes = []models.Sex{models.SexMare}
		} else {
			filter.Sexes = []models.Sex{models.SexStallion, models.SexGelding}
		}
		if horse.BirthDate != nil {
			filter.BornTo = endOfYear(horse.BirthDate.Year())
		}
	case ModeChildren:
		if horse.BirthDate != nil {
			filter.BornFrom = startOfYear(horse.BirthDate.Year())
		}
		if horse.DeathDate != nil {
			filter.BornTo = endOfYear(horse.DeathDate.Year())
		}
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidMode)
	}

	horses, _, err := s.horses.GetHorses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	project, err := s.summaryProjection(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]map[string]any, 0, len(horses))
	for _, h := range horses {
		out = append(out, project(h))
	}

	return out, nil
}

// AttachPedigree привязывает мать, отца или детей к лошади id
func (s *HorseService) AttachPedigree(ctx context.Context, id uuid.UUID, mode Mode, pedHorses []uuid.UUID) error {
	const op = "services.HorseService.AttachPedigree"

	log := s.log.With(
		slog.String("op", op),
		slog.String("horse_id", id.String()),
		slog.String("mode", string(mode)),
	)

	if len(pedHorses) == 0 {
		return fmt.Errorf("%s: %w", op, invalid("ped_horses", "ped_horses must contain at least one horse id"))
	}

	var err error
	switch mode {
	case ModeDam, ModeSire:
		if len(pedHorses) != 1 {
			return fmt.Errorf("%s: %w", op, &InputError{
				Kind:    ErrInputConflict,
				Field:   "ped_horses",
				Message: "exactly one parent can be set",
			})
		}
		err = s.attachParent(ctx, id, pedHorses[0], mode)
	case ModeChildren:
		err = s.attachChildren(ctx, id, pedHorses)
	default:
		err = ErrInvalidMode
	}

	if err != nil {
		var edgeErr *pedigree.EdgeError
		if errors.As(err, &edgeErr) {
			metrics.PedigreeEdgeRejections.WithLabelValues(edgeErr.Kind.Error()).Inc()
			log.Info("pedigree edge rejected", slog.String("reason", edgeErr.Message))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("pedigree updated", slog.Int("horses", len(pedHorses)))

	return nil
}

func (s *HorseService) attachParent(ctx context.Context, childID, parentID uuid.UUID, mode Mode) error {
	unlock := s.locker.Lock(childID, parentID)
	defer unlock()

	child, err := s.horses.GetHorseByID(ctx, childID)
	if err != nil {
		return err
	}
	parent, err := s.horses.GetHorseByID(ctx, parentID)
	if err != nil {
		return err
	}

	role := models.RoleDam
	if mode == ModeDam {
		err = s.validator.ValidateDamEdge(ctx, child, parent)
	} else {
		role = models.RoleSire
		err = s.validator.ValidateSireEdge(ctx, child, parent)
	}
	if err != nil {
		return err
	}

	if err := s.addEdge(ctx, child, parent, role, string(mode)); err != nil {
		return err
	}

	return s.tree.Invalidate(ctx, childID)
}

// attachChildren проверяет все ребра до записи и откатывает уже записанные при ошибке
func (s *HorseService) attachChildren(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error {
	childIDs = unique(childIDs)

	unlock := s.locker.Lock(append([]uuid.UUID{parentID}, childIDs...)...)
	defer unlock()

	parent, err := s.horses.GetHorseByID(ctx, parentID)
	if err != nil {
		return err
	}

	children := make([]models.Horse, 0, len(childIDs))
	for _, id := range childIDs {
		child, err := s.horses.GetHorseByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.validator.ValidateChildEdge(ctx, parent, child); err != nil {
			return err
		}
		children = append(children, child)
	}

	role := models.RoleFor(parent.Sex)
	added := make([]uuid.UUID, 0, len(children))

	for _, child := range children {
		if err := s.addEdge(ctx, child, parent, role, string(ModeChildren)); err != nil {
			for _, id := range added {
				if rbErr := s.horses.RemoveParent(ctx, id, parent.ID); rbErr != nil {
					s.log.Error("failed to roll back pedigree edge", sl.Err(rbErr), slog.String("child_id", id.String()))
				}
			}
			if invErr := s.tree.Invalidate(ctx, added...); invErr != nil {
				s.log.Error("failed to invalidate pedigree cache", sl.Err(invErr))
			}
			return err
		}
		added = append(added, child.ID)
	}

	return s.tree.Invalidate(ctx, added...)
}

func (s *HorseService) addEdge(ctx context.Context, child, parent models.Horse, role models.ParentRole, field string) error {
	err := s.horses.AddParent(ctx, models.ParentEdge{
		ChildID:  child.ID,
		ParentID: parent.ID,
		Role:     role,
	})
	if errors.Is(err, storage.ErrExists) {
		// ребро уже записано другим процессом между проверкой и записью
		return &pedigree.EdgeError{
			Kind:    pedigree.ErrDuplicateParent,
			Field:   field,
			Message: fmt.Sprintf("%s of %s is already set", role, child.Name),
		}
	}
	return err
}

// DetachPedigree отвязывает мать, отца или перечисленных детей
func (s *HorseService) DetachPedigree(ctx context.Context, id uuid.UUID, mode Mode, pedHorses []uuid.UUID) error {
	const op = "services.HorseService.DetachPedigree"

	log := s.log.With(
		slog.String("op", op),
		slog.String("horse_id", id.String()),
		slog.String("mode", string(mode)),
	)

	var err error
	switch mode {
	case ModeDam:
		err = s.detachParent(ctx, id, models.RoleDam)
	case ModeSire:
		err = s.detachParent(ctx, id, models.RoleSire)
	case ModeChildren:
		err = s.detachChildren(ctx, id, pedHorses)
	default:
		err = ErrInvalidMode
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("pedigree edge removed")

	return nil
}

func (s *HorseService) detachParent(ctx context.Context, childID uuid.UUID, role models.ParentRole) error {
	unlock := s.locker.Lock(childID)
	defer unlock()

	if _, err := s.horses.GetHorseByID(ctx, childID); err != nil {
		return err
	}

	parent, err := s.horses.ParentByRole(ctx, childID, role)
	if err != nil {
		return err
	}
	if parent == nil {
		return invalid(role.String(), fmt.Sprintf("horse has no %s", role))
	}

	if err := s.horses.RemoveParent(ctx, childID, parent.ID); err != nil {
		return err
	}

	return s.tree.Invalidate(ctx, childID)
}

func (s *HorseService) detachChildren(ctx context.Context, parentID uuid.UUID, childIDs []uuid.UUID) error {
	if len(childIDs) == 0 {
		return invalid("ped_horses", "ped_horses must contain at least one horse id")
	}
	childIDs = unique(childIDs)

	unlock := s.locker.Lock(childIDs...)
	defer unlock()

	if _, err := s.horses.GetHorseByID(ctx, parentID); err != nil {
		return err
	}

	found, err := s.horses.HorsesByIDs(ctx, childIDs)
	if err != nil {
		return err
	}
	if len(found) != len(childIDs) {
		return fmt.Errorf("some of ped_horses were not found: %w", storage.ErrNotFound)
	}

	parents, err := s.horses.ParentsOf(ctx, childIDs)
	if err != nil {
		return err
	}
	for _, id := range childIDs {
		if !containsHorse(parents[id], parentID) {
			return invalid("children", fmt.Sprintf("%s is not a child of this horse", found[id].Name))
		}
	}

	for _, id := range childIDs {
		if err := s.horses.RemoveParent(ctx, id, parentID); err != nil {
			return err
		}
	}

	return s.tree.Invalidate(ctx, childIDs...)
}

// summaryProjection сокращенное представление лошади для узлов дерева и списков
func (s *HorseService) summaryProjection(ctx context.Context) (pedigree.Projection, error) {
	breeds, err := s.breedIndex(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	return func(h models.Horse) map[string]any {
		var breed *string
		if h.BreedID != nil {
			if b, ok := breeds[*h.BreedID]; ok {
				breed = &b.Name
			}
		}

		return map[string]any{
			"id":              h.ID,
			"name":            h.Name,
			"breed":           breed,
			"sex":             h.Sex,
			"bdate_formatted": h.Birth().Format(),
			"ddate_formatted": h.Death().Format(),
			"description":     h.Description,
			"age":             h.Age(now),
		}
	}, nil
}

func (s *HorseService) breedIndex(ctx context.Context) (map[uuid.UUID]models.Breed, error) {
	breeds, err := s.breeds.GetBreeds(ctx, "")
	if err != nil {
		return nil, err
	}
	index := make(map[uuid.UUID]models.Breed, len(breeds))
	for _, b := range breeds {
		index[b.ID] = b
	}
	return index, nil
}

func (s *HorseService) checkHorse(ctx context.Context, h models.Horse) error {
	if !h.Sex.Valid() {
		return invalid("sex", "sex must be 0 (mare), 1 (stallion) or 2 (gelding)")
	}
	if !h.BirthMode.Valid() {
		return invalid("bdate_mode", "unknown date mode")
	}
	if !h.DeathMode.Valid() {
		return invalid("ddate_mode", "unknown date mode")
	}
	now := s.now()
	if h.BirthDate != nil && h.BirthDate.After(now) {
		return invalid("bdate", "birth date cannot be in the future")
	}
	if h.DeathDate != nil && h.DeathDate.After(now) {
		return invalid("ddate", "death date cannot be in the future")
	}
	if cmp, ok := pedigree.CompareDates(h.Death(), h.Birth()); ok && cmp < 0 {
		return invalid("ddate", "death date cannot be earlier than birth date")
	}

	if h.OwnerID != nil {
		if _, err := s.owners.GetOwnerByID(ctx, *h.OwnerID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return invalid("owner_id", "owner not found")
			}
			return err
		}
	}

	return nil
}

// resolveBreed принимает id породы, ее имя или "none".
// По неизвестному имени порода создается. reset == true означает сброс породы.
func (s *HorseService) resolveBreed(ctx context.Context, raw *string) (id *uuid.UUID, reset bool, err error) {
	if raw == nil {
		return nil, false, nil
	}

	value := strings.TrimSpace(*raw)
	if value == "" || strings.EqualFold(value, "none") {
		return nil, true, nil
	}

	if breedID, parseErr := uuid.Parse(value); parseErr == nil {
		breed, err := s.breeds.GetBreedByID(ctx, breedID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, false, invalid("breed", "breed not found")
			}
			return nil, false, err
		}
		return &breed.ID, false, nil
	}

	breed, err := s.breeds.GetBreedByName(ctx, value)
	if err == nil {
		return &breed.ID, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, err
	}

	newID, err := s.breeds.CreateBreed(ctx, models.Breed{Name: value})
	if err != nil {
		return nil, false, err
	}
	s.log.Info("breed created", slog.String("name", value))

	return &newID, false, nil
}

func (s *HorseService) checkPhotos(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	ids = unique(ids)

	photos, err := s.photos.GetPhotosByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(photos) != len(ids) {
		return invalid("photo_ids", "some photos were not found")
	}
	return nil
}

func (s *HorseService) updatePhotos(ctx context.Context, horseID uuid.UUID, ids []uuid.UUID, action string) error {
	if err := s.checkPhotos(ctx, ids); err != nil {
		return err
	}

	current, err := s.horses.GetHorseByID(ctx, horseID)
	if err != nil {
		return err
	}

	var next []uuid.UUID
	switch action {
	case "add":
		next = unique(append(append([]uuid.UUID{}, current.PhotoIDs...), ids...))
	case "remove":
		drop := make(map[uuid.UUID]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		for _, id := range current.PhotoIDs {
			if _, ok := drop[id]; !ok {
				next = append(next, id)
			}
		}
	default:
		next = unique(ids)
	}

	return s.horses.SetHorsePhotos(ctx, horseID, next)
}

func startOfYear(year int) *time.Time {
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func endOfYear(year int) *time.Time {
	t := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return &t
}

func unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func containsHorse(list []models.Horse, id uuid.UUID) bool {
	for _, h := range list {
		if h.ID == id {
			return true
		}
	}
	return false
}
