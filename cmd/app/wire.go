//go:build wireinject
// +build wireinject

package main

import (
	"net/http"

	"soundgate/config"
	"soundgate/internal/command"
	"soundgate/internal/cron"
	"soundgate/internal/database"
	"soundgate/internal/handler"
	"soundgate/internal/middleware"
	"soundgate/internal/router"
	"soundgate/internal/service"
	"soundgate/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			telemetry.ProviderSet,
			wire.Bind(new(http.Handler), new(*gin.Engine)),
			newHttpServer,
			newHttpClient,
			newApp,
		),
	)
}

// wireCommand init cli commands.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			telemetry.ProviderSet,
			newHttpClient,
			command.ProviderSet,
		),
	)
}
