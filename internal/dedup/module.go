package dedup

import (
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

// Module provides the inbound message dedup guard.
var Module = fx.Provide(
	func(store kv.Store, cfg *config.Config) *Guard {
		return NewGuard(store, cfg.DedupTTL)
	},
)
