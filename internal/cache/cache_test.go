package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}
func (failingStore) SetNX(context.Context, string, string, time.Duration) (bool, error) {
	return false, errors.New("down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("down") }

func newCache(store kv.Store) *Cache {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheRoundTrip(t *testing.T) {
	c := newCache(kv.NewMemory())
	ctx := context.Background()

	var dest payload
	if c.GetJSON(ctx, "k", &dest) {
		t.Fatal("expected miss on empty cache")
	}

	c.PutJSON(ctx, "k", payload{Name: "Chips", Count: 3}, time.Minute)
	if !c.GetJSON(ctx, "k", &dest) {
		t.Fatal("expected hit after put")
	}
	if dest.Name != "Chips" || dest.Count != 3 {
		t.Fatalf("unexpected value: %+v", dest)
	}

	c.Invalidate(ctx, "k")
	if c.GetJSON(ctx, "k", &dest) {
		t.Fatal("expected miss after invalidation")
	}
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	store := kv.NewMemory()
	c := newCache(store)
	ctx := context.Background()

	if err := store.Set(ctx, "k", "{not json", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var dest payload
	if c.GetJSON(ctx, "k", &dest) {
		t.Fatal("corrupt entry must read as a miss")
	}
}

func TestCacheSwallowsStoreFailures(t *testing.T) {
	c := newCache(failingStore{})
	ctx := context.Background()

	var dest payload
	if c.GetJSON(ctx, "k", &dest) {
		t.Fatal("failed read must be a miss")
	}
	c.PutJSON(ctx, "k", payload{Name: "x"}, time.Minute)
	c.Invalidate(ctx, "k")
}
