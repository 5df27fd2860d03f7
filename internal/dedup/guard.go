package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

const keyPrefix = "chat:msg:"

// Guard provides admission idempotency for inbound messages. The transport may
// redeliver a message on ambiguous acknowledgment; the marker is written before
// any side-effecting work so a retry can never be admitted twice within the
// retention window.
type Guard struct {
	kv  kv.Store
	ttl time.Duration
}

// NewGuard creates a guard with the given marker retention window.
func NewGuard(store kv.Store, ttl time.Duration) *Guard {
	return &Guard{kv: store, ttl: ttl}
}

// Admit records the message id and reports true the first time it is called
// for that id within the retention window, false on every repeat.
func (g *Guard) Admit(ctx context.Context, messageID string) (bool, error) {
	ok, err := g.kv.SetNX(ctx, keyPrefix+messageID, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("dedup admit: %w", err)
	}
	return ok, nil
}
