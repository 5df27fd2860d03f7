package dedup

import (
	"context"
	"testing"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

func TestGuardAdmitsOnce(t *testing.T) {
	store := kv.NewMemory()
	guard := NewGuard(store, time.Hour)
	ctx := context.Background()

	ok, err := guard.Admit(ctx, "wamid.abc")
	if err != nil || !ok {
		t.Fatalf("first admit = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = guard.Admit(ctx, "wamid.abc")
	if err != nil || ok {
		t.Fatalf("repeat admit = (%v, %v), want (false, nil)", ok, err)
	}

	ok, err = guard.Admit(ctx, "wamid.def")
	if err != nil || !ok {
		t.Fatalf("different id admit = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestGuardMarkerExpires(t *testing.T) {
	store := kv.NewMemory()
	guard := NewGuard(store, time.Hour)
	ctx := context.Background()

	if ok, _ := guard.Admit(ctx, "wamid.abc"); !ok {
		t.Fatal("expected first admit")
	}

	store.SetClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	if ok, _ := guard.Admit(ctx, "wamid.abc"); !ok {
		t.Fatal("expected admit after marker expiry")
	}
}
