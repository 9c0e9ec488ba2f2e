package pedigree

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"equestrian/internal/domain/models"
	"equestrian/internal/lib/logger/sl"
	"equestrian/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	MinDepth = 1
	MaxDepth = 5
)

// Projection возвращает сводное представление лошади для узла дерева.
// Каждый вызов должен возвращать новую map: построитель дописывает в нее ключи dam и sire.
type Projection func(h models.Horse) map[string]any

// Store источник ребер родословной для построения дерева
type Store interface {
	ParentLookup
	// ParentsOf возвращает родителей каждой лошади, упорядоченных по имени
	ParentsOf(ctx context.Context, childIDs []uuid.UUID) (map[uuid.UUID][]models.Horse, error)
	HorsesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Horse, error)
}

// ParseDepth разбирает параметр pedigree запроса.
// ok == false, если параметр не задан или не является числом.
func ParseDepth(raw string) (depth int, ok bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return ClampDepth(n), true
}

func ClampDepth(n int) int {
	if n < MinDepth {
		return MinDepth
	}
	if n > MaxDepth {
		return MaxDepth
	}
	return n
}

type parents struct {
	dam  *models.Horse
	sire *models.Horse
}

// TreeBuilder строит дерево предков лошади ограниченной глубины
type TreeBuilder struct {
	log    *slog.Logger
	store  Store
	cache  ParentCache
	flight singleflight.Group
	epoch  atomic.Uint64
}

func NewTreeBuilder(log *slog.Logger, store Store, cache ParentCache) *TreeBuilder {
	return &TreeBuilder{
		log:   log,
		store: store,
		cache: cache,
	}
}

// Build возвращает {"dam": ..., "sire": ...} для лошади horse.
// Каждый узел - project(лошадь) и, кроме последнего уровня, ключи dam и sire.
func (b *TreeBuilder) Build(ctx context.Context, horse models.Horse, depth int, project Projection) (map[string]any, error) {
	const op = "pedigree.TreeBuilder.Build"

	depth = ClampDepth(depth)

	known, err := b.prefetch(ctx, horse, depth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	root := known[horse.ID]

	return map[string]any{
		"dam":  b.node(root.dam, 0, depth, project, known),
		"sire": b.node(root.sire, 0, depth, project, known),
	}, nil
}

func (b *TreeBuilder) node(h *models.Horse, depth, maxDepth int, project Projection, known map[uuid.UUID]parents) map[string]any {
	if h == nil || project == nil || depth >= maxDepth {
		return nil
	}

	data := project(*h)

	if depth+1 != maxDepth {
		p := known[h.ID]
		data["dam"] = b.node(p.dam, depth+1, maxDepth, project, known)
		data["sire"] = b.node(p.sire, depth+1, maxDepth, project, known)
	}

	return data
}

// Invalidate сбрасывает закэшированных родителей лошадей.
// Вызывается синхронно после каждой записи ребра.
func (b *TreeBuilder) Invalidate(ctx context.Context, horseIDs ...uuid.UUID) error {
	b.epoch.Add(1)

	if err := b.cache.Invalidate(ctx, horseIDs...); err != nil {
		return fmt.Errorf("pedigree.TreeBuilder.Invalidate: %w", err)
	}
	return nil
}

// prefetch загружает предков уровень за уровнем: по одному запросу к хранилищу на уровень
func (b *TreeBuilder) prefetch(ctx context.Context, horse models.Horse, depth int) (map[uuid.UUID]parents, error) {
	epoch := b.epoch.Load()
	key := fmt.Sprintf("%s:%d:%d", horse.ID, depth, epoch)

	v, err, _ := b.flight.Do(key, func() (interface{}, error) {
		known := make(map[uuid.UUID]parents)
		level := []models.Horse{horse}

		// предки корня образуют уровень 0, узлы уровня maxDepth-1 не раскрываются
		for round := 0; round < depth && len(level) > 0; round++ {
			if err := b.resolveLevel(ctx, level, known); err != nil {
				return nil, err
			}

			next := make([]models.Horse, 0, len(level)*2)
			for _, h := range level {
				p := known[h.ID]
				if p.dam != nil {
					next = append(next, *p.dam)
				}
				if p.sire != nil {
					next = append(next, *p.sire)
				}
			}
			level = next
		}

		return known, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(map[uuid.UUID]parents), nil
}

func (b *TreeBuilder) resolveLevel(ctx context.Context, level []models.Horse, known map[uuid.UUID]parents) error {
	const op = "pedigree.TreeBuilder.resolveLevel"

	var missing []uuid.UUID
	pointers := make(map[uuid.UUID][2]uuid.UUID)
	var cachedIDs []uuid.UUID

	for _, h := range level {
		if _, done := known[h.ID]; done {
			continue
		}
		if _, done := pointers[h.ID]; done {
			continue
		}

		damID, damOK := b.cacheGet(ctx, h.ID, models.RoleDam)
		sireID, sireOK := b.cacheGet(ctx, h.ID, models.RoleSire)
		if !damOK || !sireOK {
			missing = append(missing, h.ID)
			known[h.ID] = parents{}
			continue
		}

		pointers[h.ID] = [2]uuid.UUID{damID, sireID}
		for _, id := range []uuid.UUID{damID, sireID} {
			if id != uuid.Nil {
				cachedIDs = append(cachedIDs, id)
			}
		}
	}

	if len(cachedIDs) > 0 {
		horses, err := b.store.HorsesByIDs(ctx, cachedIDs)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		for id, ptr := range pointers {
			known[id] = parents{
				dam:  lookup(horses, ptr[0]),
				sire: lookup(horses, ptr[1]),
			}
		}
	} else {
		for id := range pointers {
			known[id] = parents{}
		}
	}

	if len(missing) == 0 {
		return nil
	}

	// версии читаются до похода в хранилище: инвалидация после этого момента отменит запись
	versions, err := b.cache.Versions(ctx, missing)
	if err != nil {
		b.log.Warn("parent cache versions failed", sl.Err(err))
		versions = nil
	}

	fetched, err := b.store.ParentsOf(ctx, missing)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range missing {
		p := pickParents(fetched[id])
		known[id] = p

		if version, ok := versions[id]; ok {
			b.cacheSet(ctx, id, version, p)
		}
	}

	return nil
}

func (b *TreeBuilder) cacheGet(ctx context.Context, horseID uuid.UUID, role models.ParentRole) (uuid.UUID, bool) {
	id, ok, err := b.cache.Get(ctx, horseID, role)
	if err != nil {
		b.log.Warn("parent cache get failed", sl.Err(err), slog.String("horse_id", horseID.String()))
		ok = false
	}

	if ok {
		metrics.PedigreeCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.PedigreeCacheLookups.WithLabelValues("miss").Inc()
	}
	return id, ok
}

func (b *TreeBuilder) cacheSet(ctx context.Context, horseID uuid.UUID, version uint64, p parents) {
	stored, err := b.cache.Set(ctx, horseID, version, horseIDOf(p.dam), horseIDOf(p.sire))
	if err != nil {
		b.log.Warn("parent cache set failed", sl.Err(err), slog.String("horse_id", horseID.String()))
		return
	}
	if !stored {
		b.log.Debug("parent cache set skipped, horse invalidated", slog.String("horse_id", horseID.String()))
	}
}

func horseIDOf(h *models.Horse) uuid.UUID {
	if h == nil {
		return uuid.Nil
	}
	return h.ID
}

// pickParents берет первую кобылу как мать и первого жеребца или мерина как отца
func pickParents(list []models.Horse) parents {
	var p parents
	for i := range list {
		h := list[i]
		if h.Sex.IsDam() {
			if p.dam == nil {
				p.dam = &h
			}
		} else if p.sire == nil {
			p.sire = &h
		}
	}
	return p
}

func lookup(horses map[uuid.UUID]models.Horse, id uuid.UUID) *models.Horse {
	if id == uuid.Nil {
		return nil
	}
	h, ok := horses[id]
	if !ok {
		return nil
	}
	return &h
}
