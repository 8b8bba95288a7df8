// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/devops-demo/items-api/internal/model"
)

// Store errors.
var (
	ErrNotFound = errors.New("item not found")
)

// Store defines the interface for item storage operations.
type Store interface {
	// List returns all items in insertion order.
	List(ctx context.Context) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id int) (*model.Item, error)

	// Create adds a new item built from the input and returns it with its
	// generated ID.
	Create(ctx context.Context, input model.ItemInput) (*model.Item, error)

	// Update replaces the item with the given ID in place. Omitted optional
	// fields revert to their defaults.
	Update(ctx context.Context, id int, input model.ItemInput) (*model.Item, error)

	// Delete removes the item with the given ID and returns it.
	Delete(ctx context.Context, id int) (*model.Item, error)
}
