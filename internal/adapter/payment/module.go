package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
)

// Module exposes the payment client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.PaymentAPIURL == "" {
		return Disabled{}, nil
	}
	return NewHTTPClient(p.Config.PaymentAPIURL, p.Logger)
}
