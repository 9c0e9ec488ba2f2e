package pedigree

import (
	"context"
	"fmt"
	"sync"
	"time"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// DefaultParentTTL время жизни закэшированного указателя на родителя
const DefaultParentTTL = 15 * time.Minute

// ParentCache кэш указателей (лошадь, роль) -> родитель.
// uuid.Nil в значении означает "родителя нет".
//
// У каждой лошади есть версия записей. Invalidate увеличивает ее,
// Set пишет только если версия не изменилась с момента чтения через Versions.
type ParentCache interface {
	Get(ctx context.Context, horseID uuid.UUID, role models.ParentRole) (parentID uuid.UUID, ok bool, err error)
	Versions(ctx context.Context, horseIDs []uuid.UUID) (map[uuid.UUID]uint64, error)
	Set(ctx context.Context, horseID uuid.UUID, version uint64, damID, sireID uuid.UUID) (stored bool, err error)
	Invalidate(ctx context.Context, horseIDs ...uuid.UUID) error
}

// MemoryParentCache реализация ParentCache в памяти процесса
type MemoryParentCache struct {
	c *cache.Cache

	mu       sync.Mutex
	versions map[uuid.UUID]uint64
}

func NewMemoryParentCache(ttl time.Duration) *MemoryParentCache {
	if ttl <= 0 {
		ttl = DefaultParentTTL
	}
	return &MemoryParentCache{
		c:        cache.New(ttl, 2*ttl),
		versions: make(map[uuid.UUID]uint64),
	}
}

func (m *MemoryParentCache) Get(_ context.Context, horseID uuid.UUID, role models.ParentRole) (uuid.UUID, bool, error) {
	v, ok := m.c.Get(CacheKey(horseID, role))
	if !ok {
		return uuid.Nil, false, nil
	}
	return v.(uuid.UUID), true, nil
}

func (m *MemoryParentCache) Versions(_ context.Context, horseIDs []uuid.UUID) (map[uuid.UUID]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[uuid.UUID]uint64, len(horseIDs))
	for _, id := range horseIDs {
		out[id] = m.versions[id]
	}
	return out, nil
}

func (m *MemoryParentCache) Set(_ context.Context, horseID uuid.UUID, version uint64, damID, sireID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.versions[horseID] != version {
		return false, nil
	}
	m.c.SetDefault(CacheKey(horseID, models.RoleDam), damID)
	m.c.SetDefault(CacheKey(horseID, models.RoleSire), sireID)
	return true, nil
}

func (m *MemoryParentCache) Invalidate(_ context.Context, horseIDs ...uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range horseIDs {
		m.versions[id]++
		m.c.Delete(CacheKey(id, models.RoleDam))
		m.c.Delete(CacheKey(id, models.RoleSire))
	}
	return nil
}

func CacheKey(horseID uuid.UUID, role models.ParentRole) string {
	return fmt.Sprintf("pedigree:horse:%s:%s", horseID, role)
}

func VersionKey(horseID uuid.UUID) string {
	return fmt.Sprintf("pedigree:horse:%s:ver", horseID)
}
