//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/conf"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/data"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/metrics"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/server"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Bootstrap, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, service.ProviderSet, metrics.NewMetrics, newApp))
}
