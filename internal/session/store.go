package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

const keyPrefix = "chat:session:"

// Store is the exclusive owner of per-sender conversation state. Sessions are
// JSON values in the key-value store with a sliding inactivity TTL; an expired
// session simply reads as absent.
type Store struct {
	kv  kv.Store
	ttl time.Duration
}

// NewStore creates a conversation store with the given inactivity window.
func NewStore(store kv.Store, ttl time.Duration) *Store {
	return &Store{kv: store, ttl: ttl}
}

// Get loads the live session for a sender address, or nil if none exists.
func (s *Store) Get(ctx context.Context, sender string) (*model.Session, error) {
	raw, ok, err := s.kv.Get(ctx, keyPrefix+sender)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

// Save persists the session and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sender string, sess *model.Session) error {
	sess.LastActivityAt = time.Now()
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, keyPrefix+sender, string(raw), s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Delete removes the session, as on logout. Deleting an absent session is not
// an error.
func (s *Store) Delete(ctx context.Context, sender string) error {
	return s.kv.Delete(ctx, keyPrefix+sender)
}
