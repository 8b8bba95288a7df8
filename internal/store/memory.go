package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/devops-demo/items-api/internal/model"
)

// MemoryStore implements Store with an ordered in-memory collection.
//
// Items are kept in a slice so List preserves insertion order and Update
// replaces in place. The RWMutex serializes access because the HTTP router
// dispatches handlers on concurrent goroutines.
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.Item
}

// NewMemoryStore creates a MemoryStore holding the given seed items.
func NewMemoryStore(seed ...model.Item) *MemoryStore {
	items := make([]model.Item, len(seed))
	copy(items, seed)

	itemsInStore.Set(float64(len(items)))

	return &MemoryStore{items: items}
}

// SeedItems returns the default catalog the service starts with.
func SeedItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Laptop", Description: "High-performance laptop", Price: 1200.00, InStock: true},
		{ID: 2, Name: "Mouse", Description: "Wireless mouse", Price: 25.00, InStock: true},
		{ID: 3, Name: "Keyboard", Description: "Mechanical keyboard", Price: 80.00, InStock: false},
	}
}

// List returns all items in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Item, len(s.items))
	copy(items, s.items)

	recordOperation("list", resultOK)
	return items, nil
}

// Get retrieves an item by its ID. The scan compares IDs in insertion
// order, so if duplicates ever existed the first match would win; normal
// store operations never produce duplicates.
func (s *MemoryStore) Get(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			found := item
			recordOperation("get", resultOK)
			return &found, nil
		}
	}

	recordOperation("get", resultNotFound)
	return nil, ErrNotFound
}

// Create adds a new item built from the input and returns it.
//
// The new ID is max(existing ids, default 0) + 1. After deleting an item
// that did not hold the maximum ID, that ID can be handed out again; this
// matches the historical behavior of the service and is deliberately not a
// monotonic counter.
func (s *MemoryStore) Create(ctx context.Context, input model.ItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	newItem := input.Item(s.nextID())
	s.items = append(s.items, newItem)

	itemsInStore.Set(float64(len(s.items)))
	recordOperation("create", resultOK)

	return &newItem, nil
}

// Update replaces the item with the given ID in place, keeping its position
// in the ordered collection. Omitted optional fields revert to their
// defaults. The store is left unmutated when the ID is unknown.
func (s *MemoryStore) Update(ctx context.Context, id int, input model.ItemInput) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, item := range s.items {
		if item.ID == id {
			updated := input.Item(id)
			s.items[idx] = updated
			recordOperation("update", resultOK)
			return &updated, nil
		}
	}

	recordOperation("update", resultNotFound)
	return nil, ErrNotFound
}

// Delete removes the item with the given ID and returns it. The store is
// left unmutated when the ID is unknown.
func (s *MemoryStore) Delete(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, item := range s.items {
		if item.ID == id {
			removed := item
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			itemsInStore.Set(float64(len(s.items)))
			recordOperation("delete", resultOK)
			return &removed, nil
		}
	}

	recordOperation("delete", resultNotFound)
	return nil, ErrNotFound
}

// Len returns the number of stored items.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// nextID computes the next ID to assign. Caller must hold the write lock.
func (s *MemoryStore) nextID() int {
	maxID := 0
	for _, item := range s.items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}

	return maxID + 1
}
