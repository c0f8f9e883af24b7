//go:build wireinject
// +build wireinject

package main

import (
	"shiftboard/config"
	"shiftboard/internal/auth"
	"shiftboard/internal/command"
	"shiftboard/internal/cron"
	"shiftboard/internal/database"
	"shiftboard/internal/database/client"
	mongoRepo "shiftboard/internal/database/mongodb/repository"
	redisRepo "shiftboard/internal/database/redis/repository"
	"shiftboard/internal/handler"
	"shiftboard/internal/middleware"
	"shiftboard/internal/router"
	"shiftboard/internal/service"
	"shiftboard/internal/telemetry"

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
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init command.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(
		client.NewMongoClient,
		client.NewRedisClient,
		mongoRepo.NewUserRepository,
		redisRepo.NewTokenBlacklistRepository,
		telemetry.NewTrace,
		auth.NewTokenManager,
		wire.Bind(new(service.UserStore), new(*mongoRepo.UserRepository)),
		wire.Bind(new(auth.Revoker), new(*redisRepo.TokenBlacklistRepository)),
		service.NewAuthService,
		command.ProviderSet,
	))
}
