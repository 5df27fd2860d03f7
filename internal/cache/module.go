package cache

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
)

// Module provides the best-effort read cache.
var Module = fx.Provide(
	func(store kv.Store, logger *slog.Logger) *Cache {
		return New(store, logger)
	},
)
