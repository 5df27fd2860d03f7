package session

import (
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

// Module provides the conversation session store.
var Module = fx.Provide(
	func(store kv.Store, cfg *config.Config) *Store {
		return NewStore(store, cfg.SessionTTL)
	},
)
