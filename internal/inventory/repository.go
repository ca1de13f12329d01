package inventory

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("item not found")

type Repository interface {
	Create(ctx context.Context, item *Item) error
	// ListByOwner returns newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*Item, error)
	Delete(ctx context.Context, id, ownerID string) error
	UpdateWeeklyCustomers(ctx context.Context, ownerID string, weekly int) (int64, error)
}
