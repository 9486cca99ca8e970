// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/store"
	"github.com/aquapump/aquapump/store/db/metric"
	"github.com/aquapump/aquapump/store/dynamodb"
	"github.com/aquapump/aquapump/store/inmem"
	"github.com/aquapump/aquapump/store/postgres"
)

// Configs names the available backends. The first configured one wins:
// dynamo, then postgres, then the in-memory fallback.
type Configs struct {
	Dynamo   *dynamodb.Config
	Postgres *postgres.Config
}

type SetupIn struct {
	fx.In

	Configs  Configs
	Measures metric.Measures
	LC       fx.Lifecycle
	Logger   *zap.Logger
}

func Provide() fx.Option {
	return fx.Provide(
		SetupStore,
	)
}

func SetupStore(in SetupIn) (store.S, error) {
	if in.Configs.Dynamo != nil {
		in.Logger.Info("using dynamodb store implementation")
		return dynamodb.New(context.Background(), *in.Configs.Dynamo, in.Measures)
	}
	if in.Configs.Postgres != nil {
		in.Logger.Info("using postgres store implementation")
		pg, err := postgres.New(context.Background(), *in.Configs.Postgres, in.Measures)
		if err != nil {
			return nil, err
		}
		in.LC.Append(fx.Hook{
			OnStop: func(context.Context) error {
				pg.Close()
				return nil
			},
		})
		return pg, nil
	}
	in.Logger.Info("using in memory store implementation")
	return inmem.New(), nil
}
