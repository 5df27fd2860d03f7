package kv

import (
	"context"

	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
)

// Module wires the Redis-backed key-value store.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

func newStore(p storeParams) (*RedisStore, Store, error) {
	store, err := NewRedisStore(p.Ctx, p.Config.RedisAddr, p.Config.RedisPassword, p.Config.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return store, store, nil
}

func registerLifecycle(lc fx.Lifecycle, store *RedisStore) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
