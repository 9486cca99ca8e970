// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type handlerIn struct {
	fx.In

	Store  S
	Logger *zap.Logger
}

// ProvideHandlers builds the named handler for every operation in the
// catalogue. routes wiring picks them up by name.
func ProvideHandlers() fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name:   "pumps_list_handler",
			Target: newListPumpsHandler,
		},
		fx.Annotated{
			Name:   "pumps_get_handler",
			Target: newGetPumpHandler,
		},
		fx.Annotated{
			Name:   "pumps_create_handler",
			Target: newCreatePumpHandler,
		},
		fx.Annotated{
			Name:   "pumps_update_handler",
			Target: newUpdatePumpHandler,
		},
		fx.Annotated{
			Name:   "pumps_delete_handler",
			Target: newDeletePumpHandler,
		},
		fx.Annotated{
			Name:   "pumps_logs_list_handler",
			Target: newListLogsHandler,
		},
		fx.Annotated{
			Name:   "pumps_logs_create_handler",
			Target: newCreateLogHandler,
		},
	)
}

func newListPumpsHandler(in handlerIn) Handler {
	return newHandler("pumps.list", newListPumpsEndpoint(in.Store), decodeListPumpsRequest, in.Logger)
}

func newGetPumpHandler(in handlerIn) Handler {
	return newHandler("pumps.get", newGetPumpEndpoint(in.Store), decodeGetPumpRequest, in.Logger)
}

func newCreatePumpHandler(in handlerIn) Handler {
	return newHandler("pumps.create", newCreatePumpEndpoint(in.Store), decodeCreatePumpRequest, in.Logger)
}

func newUpdatePumpHandler(in handlerIn) Handler {
	return newHandler("pumps.update", newUpdatePumpEndpoint(in.Store), decodeUpdatePumpRequest, in.Logger)
}

func newDeletePumpHandler(in handlerIn) Handler {
	return newHandler("pumps.delete", newDeletePumpEndpoint(in.Store), decodeDeletePumpRequest, in.Logger)
}

func newListLogsHandler(in handlerIn) Handler {
	return newHandler("pumps.logs.list", newListLogsEndpoint(in.Store), decodeListLogsRequest, in.Logger)
}

func newCreateLogHandler(in handlerIn) Handler {
	return newHandler("pumps.logs.create", newCreateLogEndpoint(in.Store), decodeCreateLogRequest, in.Logger)
}
