package artifact

import (
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
)

// Module provides the pickup payload issuer.
var Module = fx.Provide(
	func(cfg *config.Config) *Issuer {
		return NewIssuer(cfg.PickupSecret, cfg.PickupCodeTTL)
	},
)
