//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/alkias2/SolunarBase/internal/bootstrap"
	"github.com/alkias2/SolunarBase/internal/domain/solunar"
	"github.com/alkias2/SolunarBase/internal/infra/astro"
	"github.com/alkias2/SolunarBase/internal/infra/config"
	httpiface "github.com/alkias2/SolunarBase/internal/interface/http"
	"github.com/alkias2/SolunarBase/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSolunarConfig,
		provideAstroProvider,
		provideHistoryRepository,
		provideForecastCache,
		solunar.NewService,
		wire.Bind(new(solunar.AstroProvider), new(*astro.Provider)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
