package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/devops-demo/items-api/internal/model"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestNewMemoryStore(t *testing.T) {
	// Act
	store := NewMemoryStore()

	// Assert
	if store == nil {
		t.Fatal("NewMemoryStore() returned nil")
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestNewMemoryStore_Seeded(t *testing.T) {
	// Act
	store := NewMemoryStore(SeedItems()...)

	// Assert
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	items, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if items[0].Name != "Laptop" {
		t.Errorf("first item = %s, want Laptop", items[0].Name)
	}
	if items[2].InStock {
		t.Error("Keyboard should be out of stock")
	}
}

func TestMemoryStore_List_PreservesInsertionOrder(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	_, err := store.Create(ctx, model.ItemInput{Name: strPtr("Monitor"), Price: floatPtr(350.00)})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	// Act
	items, err := store.List(ctx)

	// Assert
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	wantNames := []string{"Laptop", "Mouse", "Keyboard", "Monitor"}
	if len(items) != len(wantNames) {
		t.Fatalf("List() returned %d items, want %d", len(items), len(wantNames))
	}
	for i, name := range wantNames {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %s, want %s", i, items[i].Name, name)
		}
	}
}

func TestMemoryStore_List_IDsAreUnique(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := store.Create(ctx, model.ItemInput{Name: strPtr("Widget"), Price: floatPtr(1.00)}); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}

	// Act
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}

	// Assert
	seen := make(map[int]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("duplicate ID %d", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestMemoryStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		wantErr error
	}{
		{name: "existing item", id: 1, wantErr: nil},
		{name: "last seed item", id: 3, wantErr: nil},
		{name: "unknown id", id: 999, wantErr: ErrNotFound},
		{name: "zero id", id: 0, wantErr: ErrNotFound},
		{name: "negative id", id: -1, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store := NewMemoryStore(SeedItems()...)

			// Act
			item, err := store.Get(context.Background(), tt.id)

			// Assert
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if item.ID != tt.id {
				t.Errorf("ID = %d, want %d", item.ID, tt.id)
			}
		})
	}
}

func TestMemoryStore_Create_AssignsMaxPlusOne(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	// Act
	created, err := store.Create(ctx, model.ItemInput{Name: strPtr("Monitor"), Price: floatPtr(350.00)})

	// Assert
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.ID != 4 {
		t.Errorf("ID = %d, want 4", created.ID)
	}
	if !created.InStock {
		t.Error("InStock should default to true")
	}
	if store.Len() != 4 {
		t.Errorf("Len() = %d, want 4", store.Len())
	}
}

func TestMemoryStore_Create_EmptyStoreYieldsIDOne(t *testing.T) {
	// Arrange
	store := NewMemoryStore()

	// Act
	created, err := store.Create(context.Background(), model.ItemInput{Name: strPtr("First"), Price: floatPtr(1.00)})

	// Assert
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("ID = %d, want 1", created.ID)
	}
}

func TestMemoryStore_Create_IDReuseAfterDeletingMax(t *testing.T) {
	// The max-based scheme hands out the same ID again after the
	// highest-ID item is deleted. This differs from a monotonic counter
	// and is intentional.

	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	if _, err := store.Delete(ctx, 3); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	// Act
	created, err := store.Create(ctx, model.ItemInput{Name: strPtr("Webcam"), Price: floatPtr(60.00)})

	// Assert
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.ID != 3 {
		t.Errorf("ID = %d, want 3 (max-based assignment reuses the deleted max ID)", created.ID)
	}
}

func TestMemoryStore_Create_RoundTrip(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	input := model.ItemInput{
		Name:        strPtr("Monitor"),
		Description: strPtr("4K Monitor"),
		Price:       floatPtr(350.00),
		InStock:     boolPtr(false),
	}

	// Act
	created, err := store.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	fetched, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}

	// Assert
	if *fetched != *created {
		t.Errorf("Get() = %+v, want %+v", *fetched, *created)
	}
	if fetched.Description != "4K Monitor" {
		t.Errorf("Description = %q, want '4K Monitor'", fetched.Description)
	}
	if fetched.InStock {
		t.Error("InStock = true, want false")
	}
}

func TestMemoryStore_Update(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	input := model.ItemInput{
		Name:    strPtr("Updated Laptop"),
		Price:   floatPtr(1500.00),
		InStock: boolPtr(false),
	}

	// Act
	updated, err := store.Update(ctx, 1, input)

	// Assert
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.ID != 1 {
		t.Errorf("ID = %d, want 1 (update preserves ID)", updated.ID)
	}
	if updated.Name != "Updated Laptop" {
		t.Errorf("Name = %s, want 'Updated Laptop'", updated.Name)
	}
	if updated.Price != 1500.00 {
		t.Errorf("Price = %f, want 1500.00", updated.Price)
	}

	// Full replacement: the omitted description is cleared.
	if updated.Description != "" {
		t.Errorf("Description = %q, want empty after replacement", updated.Description)
	}

	// Position in the ordered sequence is preserved.
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if items[0].Name != "Updated Laptop" {
		t.Errorf("first item = %s, want 'Updated Laptop'", items[0].Name)
	}
}

func TestMemoryStore_Update_OmittedInStockResetsToTrue(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	// Keyboard (id 3) is seeded out of stock.
	input := model.ItemInput{Name: strPtr("Keyboard"), Price: floatPtr(80.00)}

	// Act
	updated, err := store.Update(ctx, 3, input)

	// Assert
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if !updated.InStock {
		t.Error("InStock should reset to true when omitted from a replacement")
	}
}

func TestMemoryStore_Update_NotFound(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	input := model.ItemInput{Name: strPtr("Ghost"), Price: floatPtr(1.00)}

	// Act
	updated, err := store.Update(ctx, 999, input)

	// Assert
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if updated != nil {
		t.Error("Update() should return nil item on error")
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (store unmutated)", store.Len())
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	// Act
	removed, err := store.Delete(ctx, 1)

	// Assert
	if err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if removed.ID != 1 || removed.Name != "Laptop" {
		t.Errorf("Delete() returned %+v, want the pre-delete Laptop item", removed)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}

	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Delete_Idempotent(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	if _, err := store.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	// Act
	removed, err := store.Delete(ctx, 2)

	// Assert
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if removed != nil {
		t.Error("second Delete() should return nil item")
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (store unmutated)", store.Len())
	}
}

func TestMemoryStore_Delete_NotFound(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)

	// Act
	_, err := store.Delete(context.Background(), 999)

	// Assert
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (store unmutated)", store.Len())
	}
}

func TestMemoryStore_ContextCancellation(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := model.ItemInput{Name: strPtr("Widget"), Price: floatPtr(1.00)}

	// Act / Assert
	if _, err := store.List(ctx); err == nil {
		t.Error("List() expected error for cancelled context")
	}
	if _, err := store.Get(ctx, 1); err == nil {
		t.Error("Get() expected error for cancelled context")
	}
	if _, err := store.Create(ctx, input); err == nil {
		t.Error("Create() expected error for cancelled context")
	}
	if _, err := store.Update(ctx, 1, input); err == nil {
		t.Error("Update() expected error for cancelled context")
	}
	if _, err := store.Delete(ctx, 1); err == nil {
		t.Error("Delete() expected error for cancelled context")
	}

	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (store unmutated)", store.Len())
	}
}

func TestMemoryStore_Scenario(t *testing.T) {
	// Arrange - seed state: 1 Laptop/1200.00, 2 Mouse/25.00, 3 Keyboard/80.00 out of stock
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	// Step 1: list returns 3 items, first is Laptop.
	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(items) != 3 || items[0].Name != "Laptop" {
		t.Fatalf("List() = %d items first %s, want 3 items first Laptop", len(items), items[0].Name)
	}

	// Step 2: create Monitor, expect id 4, in_stock true, 4 items.
	created, err := store.Create(ctx, model.ItemInput{Name: strPtr("Monitor"), Price: floatPtr(350.00)})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if created.ID != 4 || !created.InStock {
		t.Fatalf("Create() = id %d in_stock %v, want id 4 in_stock true", created.ID, created.InStock)
	}
	if store.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", store.Len())
	}

	// Step 3: replace item 1, description becomes absent.
	updated, err := store.Update(ctx, 1, model.ItemInput{
		Name:    strPtr("Updated Laptop"),
		Price:   floatPtr(1500.00),
		InStock: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.ID != 1 || updated.Name != "Updated Laptop" || updated.Description != "" {
		t.Fatalf("Update() = %+v, want id 1, new name, empty description", updated)
	}

	// Step 4: delete item 1, then Get fails and 3 items remain.
	removed, err := store.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if removed.Name != "Updated Laptop" {
		t.Fatalf("Delete() returned %s, want the pre-delete item", removed.Name)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(1) after delete error = %v, want ErrNotFound", err)
	}
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	// Steps 5-6: unknown ids fail with not found.
	if _, err := store.Get(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(999) error = %v, want ErrNotFound", err)
	}
	if _, err := store.Delete(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(999) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	// Arrange
	store := NewMemoryStore(SeedItems()...)
	ctx := context.Background()

	var wg sync.WaitGroup
	const goroutines = 10

	// Act - concurrent mixed reads and writes must not race
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Create(ctx, model.ItemInput{Name: strPtr("Widget"), Price: floatPtr(1.00)})
			_, _ = store.List(ctx)
			_, _ = store.Get(ctx, 1)
		}()
	}
	wg.Wait()

	// Assert
	if store.Len() != 3+goroutines {
		t.Errorf("Len() = %d, want %d", store.Len(), 3+goroutines)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	seen := make(map[int]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("duplicate ID %d after concurrent creates", item.ID)
		}
		seen[item.ID] = true
	}
}
