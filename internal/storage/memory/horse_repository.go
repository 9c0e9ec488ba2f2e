package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"equestrian/internal/domain/models"
	"equestrian/internal/storage"

	"github.com/google/uuid"
)

// HorseRepo хранилище лошадей и ребер родословной в памяти.
// Используется только в тестах.
type HorseRepo struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]models.Horse
	edges  map[uuid.UUID]map[models.ParentRole]uuid.UUID
	photos map[uuid.UUID][]uuid.UUID
}

func NewHorseRepo() *HorseRepo {
	return &HorseRepo{
		byID:   make(map[uuid.UUID]models.Horse),
		edges:  make(map[uuid.UUID]map[models.ParentRole]uuid.UUID),
		photos: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *HorseRepo) CreateHorse(_ context.Context, h models.Horse) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if _, exists := r.byID[h.ID]; exists {
		return uuid.Nil, storage.ErrExists
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	r.photos[h.ID] = append([]uuid.UUID(nil), h.PhotoIDs...)
	h.PhotoIDs = nil
	r.byID[h.ID] = h

	return h.ID, nil
}

func (r *HorseRepo) UpdateHorse(_ context.Context, h models.Horse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[h.ID]
	if !ok {
		return storage.ErrNotFound
	}
	h.CreatedAt = old.CreatedAt
	h.CreatedBy = old.CreatedBy
	h.PhotoIDs = nil
	r.byID[h.ID] = h

	return nil
}

func (r *HorseRepo) DeleteHorse(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.edges, id)
	delete(r.photos, id)

	for child, roles := range r.edges {
		for role, parent := range roles {
			if parent == id {
				delete(roles, role)
			}
		}
		if len(roles) == 0 {
			delete(r.edges, child)
		}
	}

	return nil
}

func (r *HorseRepo) GetHorseByID(_ context.Context, id uuid.UUID) (models.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byID[id]
	if !ok {
		return models.Horse{}, storage.ErrNotFound
	}
	h.PhotoIDs = append([]uuid.UUID(nil), r.photos[id]...)
	return h, nil
}

func (r *HorseRepo) GetHorses(_ context.Context, f models.HorseFilter) ([]models.Horse, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Horse, 0)
	for _, h := range r.byID {
		if matches(h, f) {
			out = append(out, h)
		}
	}
	sortByName(out)

	total := len(out)
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []models.Horse{}, total, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}

	return out, total, nil
}

func (r *HorseRepo) SetHorsePhotos(_ context.Context, horseID uuid.UUID, photoIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[horseID]; !ok {
		return storage.ErrNotFound
	}
	r.photos[horseID] = append([]uuid.UUID(nil), photoIDs...)
	return nil
}

func (r *HorseRepo) AddParent(_ context.Context, edge models.ParentEdge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[edge.ChildID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := r.byID[edge.ParentID]; !ok {
		return storage.ErrNotFound
	}

	roles, ok := r.edges[edge.ChildID]
	if !ok {
		roles = make(map[models.ParentRole]uuid.UUID)
		r.edges[edge.ChildID] = roles
	}
	if _, taken := roles[edge.Role]; taken {
		return storage.ErrExists
	}
	roles[edge.Role] = edge.ParentID

	return nil
}

func (r *HorseRepo) RemoveParent(_ context.Context, childID, parentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	roles := r.edges[childID]
	for role, p := range roles {
		if p == parentID {
			delete(roles, role)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (r *HorseRepo) ChildrenOf(_ context.Context, parentID uuid.UUID) ([]models.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Horse, 0)
	for child, roles := range r.edges {
		for _, p := range roles {
			if p == parentID {
				out = append(out, r.byID[child])
			}
		}
	}
	sortByName(out)
	return out, nil
}

func (r *HorseRepo) ParentByRole(_ context.Context, childID uuid.UUID, role models.ParentRole) (*models.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.edges[childID][role]
	if !ok {
		return nil, nil
	}
	h := r.byID[id]
	return &h, nil
}

func (r *HorseRepo) ParentsOf(_ context.Context, childIDs []uuid.UUID) (map[uuid.UUID][]models.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID][]models.Horse, len(childIDs))
	for _, child := range childIDs {
		for _, p := range r.edges[child] {
			out[child] = append(out[child], r.byID[p])
		}
		sortByName(out[child])
	}
	return out, nil
}

func (r *HorseRepo) HorsesByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Horse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[uuid.UUID]models.Horse, len(ids))
	for _, id := range ids {
		if h, ok := r.byID[id]; ok {
			out[id] = h
		}
	}
	return out, nil
}

func matches(h models.Horse, f models.HorseFilter) bool {
	if f.ExcludeID != nil && h.ID == *f.ExcludeID {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(f.Name)) {
		return false
	}
	if len(f.Sexes) > 0 {
		found := false
		for _, s := range f.Sexes {
			if h.Sex == s {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if f.Kind != nil && h.Kind != *f.Kind {
		return false
	}
	if f.BreedID != nil && (h.BreedID == nil || *h.BreedID != *f.BreedID) {
		return false
	}
	if f.OwnerID != nil && (h.OwnerID == nil || *h.OwnerID != *f.OwnerID) {
		return false
	}
	if f.BornFrom != nil && (h.BirthDate == nil || h.BirthDate.Before(*f.BornFrom)) {
		return false
	}
	if f.BornTo != nil && (h.BirthDate == nil || h.BirthDate.After(*f.BornTo)) {
		return false
	}
	return true
}

func sortByName(list []models.Horse) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID.String() < list[j].ID.String()
		}
		return list[i].Name < list[j].Name
	})
}
