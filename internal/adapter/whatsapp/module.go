package whatsapp

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
)

// Module exposes the messaging client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.WhatsAppAPIURL, p.Config.WhatsAppPhoneID, p.Config.WhatsAppToken, p.Logger)
}
