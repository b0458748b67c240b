package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != "v" {
		t.Errorf("Get = %q, want %q", value, "v")
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := SaveJSON(ctx, store, "key", payload{Name: "animals", Count: 3}); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	got := LoadJSON(ctx, store, "key", payload{})
	if got.Name != "animals" || got.Count != 3 {
		t.Errorf("LoadJSON = %+v, want {animals 3}", got)
	}
}

func TestLoadJSONFallback(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		stored string // empty means the key is absent
	}{
		{
			name: "missing key",
		},
		{
			name:   "corrupt value",
			stored: `{"name": not-json`,
		},
		{
			name:   "wrong shape",
			stored: `"just a string"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			if tt.stored != "" {
				if err := store.Set(ctx, "key", []byte(tt.stored)); err != nil {
					t.Fatalf("Set: %v", err)
				}
			}

			type payload struct {
				Name string `json:"name"`
			}
			fallback := payload{Name: "fallback"}

			got := LoadJSON(ctx, store, "key", fallback)
			if got != fallback {
				t.Errorf("LoadJSON = %+v, want fallback %+v", got, fallback)
			}
		})
	}
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, key := range AllKeys() {
		if err := store.Set(ctx, key, []byte("{}")); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	if err := ClearAll(ctx, store); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	for _, key := range AllKeys() {
		if _, err := store.Get(ctx, key); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%s) after ClearAll error = %v, want ErrNotFound", key, err)
		}
	}
}
