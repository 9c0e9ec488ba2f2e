package pedigree

import (
	"bytes"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// KeyedLocker сериализует изменение ребер одной и той же лошади-ребенка
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[uuid.UUID]*keyedLock)}
}

// Lock захватывает блокировки всех ids в фиксированном порядке и возвращает функцию освобождения
func (l *KeyedLocker) Lock(ids ...uuid.UUID) (unlock func()) {
	keys := dedupe(ids)
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	held := make([]*keyedLock, 0, len(keys))
	for _, id := range keys {
		held = append(held, l.acquire(id))
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
			l.release(keys[i], held[i])
		}
	}
}

func (l *KeyedLocker) acquire(id uuid.UUID) *keyedLock {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &keyedLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.mu.Lock()
	return lk
}

func (l *KeyedLocker) release(id uuid.UUID, lk *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lk.refs--
	if lk.refs == 0 {
		delete(l.locks, id)
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
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
