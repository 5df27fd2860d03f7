package auth

import (
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPINHasher),
	fx.Provide(newTokenStrategy),
)

func newPINHasher() PINHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.AuthSecret, Options{})
}
