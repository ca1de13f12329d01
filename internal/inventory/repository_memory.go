package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu    sync.RWMutex
	items []*Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(_ context.Context, item *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	stored := *item
	r.items = append(r.items, &stored)
	return nil
}

func (r *InMemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*Item{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].OwnerID == ownerID {
			copied := *r.items[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, it := range r.items {
		if it.ID == id && it.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) UpdateWeeklyCustomers(_ context.Context, ownerID string, weekly int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			w := weekly
			it.WeeklyCustomers = &w
			n++
		}
	}
	return n, nil
}
