package memory

import (
	"context"
	"errors"
	"testing"

	"veswap-points/internal/storage"
)

func TestCursorStore_GetUnknownSource(t *testing.T) {
	store := NewCursorStore()

	_, err := store.Get(context.Background(), "records.json")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCursorStore_SetAndGet(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	if err := store.Set(ctx, "records.json", 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := store.Get(ctx, "records.json")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != 42 {
		t.Errorf("cursor = %d, want 42", got)
	}

	// Overwrite moves the cursor forward.
	if err := store.Set(ctx, "records.json", 100); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, "records.json"); got != 100 {
		t.Errorf("cursor = %d, want 100", got)
	}
}

func TestCursorStore_InvalidInput(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	if err := store.Set(ctx, "", 1); !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("empty source: expected ErrInvalidInput, got %v", err)
	}
	if err := store.Set(ctx, "records.json", -1); !errors.Is(err, storage.ErrInvalidInput) {
		t.Fatalf("negative index: expected ErrInvalidInput, got %v", err)
	}
}

func TestCursorStore_SourcesAreIndependent(t *testing.T) {
	store := NewCursorStore()
	ctx := context.Background()

	if err := store.Set(ctx, "a.json", 1); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "b.csv", 2); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Get(ctx, "a.json"); got != 1 {
		t.Errorf("a.json cursor = %d", got)
	}
	if got, _ := store.Get(ctx, "b.csv"); got != 2 {
		t.Errorf("b.csv cursor = %d", got)
	}
}
