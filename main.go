// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/agent"
	"github.com/aquapump/aquapump/store"
	"github.com/aquapump/aquapump/store/db"
	"github.com/aquapump/aquapump/store/db/metric"
)

const shutdownGrace = 15 * time.Second

func main() {
	// a .env file is optional; real deployments use the environment directly
	if _, err := os.Stat(".env"); err == nil {
		godotenv.Load()
	}

	v, logger, err := setup(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := fx.New(
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Supply(logger, v),
		provideMetrics(),
		metric.ProvideMetrics(),
		db.Provide(),
		store.ProvideHandlers(),
		agent.ProvideHandler(),
		fx.Provide(
			newConfig,
			newStoreConfigs,
			newAgentConfig,
			agent.New,
			newStartTime,
			NewRouter,
			NewPrimaryHandler,
			newServer,
		),
		fx.Invoke(func(*http.Server) {}),
	)

	switch err := app.Err(); {
	case errors.Is(err, pflag.ErrHelp):
		return
	case err == nil:
		app.Run()
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newServer(lc fx.Lifecycle, cfg Config, handler http.Handler, logger *zap.Logger) *http.Server {
	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler: handler,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listener, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			logger.Info("server listening",
				zap.String("addr", server.Addr),
				zap.String("environment", cfg.Environment))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server stopped unexpectedly", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
			defer cancel()
			logger.Info("shutting down")
			return server.Shutdown(shutdownCtx)
		},
	})

	return server
}
