package di

import (
	"go.uber.org/fx"

	"github.com/tinoe0404/eTuckshop-sub000/internal/adapter/payment"
	"github.com/tinoe0404/eTuckshop-sub000/internal/adapter/whatsapp"
	"github.com/tinoe0404/eTuckshop-sub000/internal/app"
	"github.com/tinoe0404/eTuckshop-sub000/internal/artifact"
	"github.com/tinoe0404/eTuckshop-sub000/internal/cache"
	"github.com/tinoe0404/eTuckshop-sub000/internal/chat"
	"github.com/tinoe0404/eTuckshop-sub000/internal/config"
	"github.com/tinoe0404/eTuckshop-sub000/internal/dedup"
	"github.com/tinoe0404/eTuckshop-sub000/internal/kv"
	"github.com/tinoe0404/eTuckshop-sub000/internal/logger"
	"github.com/tinoe0404/eTuckshop-sub000/internal/pkg/auth"
	"github.com/tinoe0404/eTuckshop-sub000/internal/server/http/router"
	"github.com/tinoe0404/eTuckshop-sub000/internal/session"
	"github.com/tinoe0404/eTuckshop-sub000/internal/storage/postgres"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		kv.Module,
		cache.Module,
		session.Module,
		dedup.Module,
		artifact.Module,
		whatsapp.Module,
		payment.Module,
		usecase.Module,
		fx.Provide(func(client payment.Client) usecase.PaymentLinker { return client }),
		chat.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
