// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/store"
)

const apiBase = "/api/rpc"

// startTime anchors the uptime reported by the health probe.
type startTime time.Time

func newStartTime() startTime {
	return startTime(time.Now().UTC())
}

type PrimaryHandlersIn struct {
	fx.In

	PumpsList      store.Handler `name:"pumps_list_handler"`
	PumpsGet       store.Handler `name:"pumps_get_handler"`
	PumpsCreate    store.Handler `name:"pumps_create_handler"`
	PumpsUpdate    store.Handler `name:"pumps_update_handler"`
	PumpsDelete    store.Handler `name:"pumps_delete_handler"`
	PumpsLogsList  store.Handler `name:"pumps_logs_list_handler"`
	PumpsLogsWrite store.Handler `name:"pumps_logs_create_handler"`
	ChatSend       store.Handler `name:"chat_send_handler"`
}

type RoutesIn struct {
	fx.In

	Config   Config
	Logger   *zap.Logger
	Start    startTime
	Measures HTTPMeasures
	Gatherer prometheus.Gatherer
	Handlers PrimaryHandlersIn
}

// NewRouter mounts every named operation under the RPC prefix, the three
// probes, and the metrics endpoint. Unmatched paths produce the structured
// not-found response.
func NewRouter(in RoutesIn) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix(apiBase).Subrouter()
	api.Handle("/pumps.list", in.Handlers.PumpsList).Methods(http.MethodPost)
	api.Handle("/pumps.get", in.Handlers.PumpsGet).Methods(http.MethodPost)
	api.Handle("/pumps.create", in.Handlers.PumpsCreate).Methods(http.MethodPost)
	api.Handle("/pumps.update", in.Handlers.PumpsUpdate).Methods(http.MethodPost)
	api.Handle("/pumps.delete", in.Handlers.PumpsDelete).Methods(http.MethodPost)
	api.Handle("/pumps.logs.list", in.Handlers.PumpsLogsList).Methods(http.MethodPost)
	api.Handle("/pumps.logs.create", in.Handlers.PumpsLogsWrite).Methods(http.MethodPost)
	api.Handle("/chat.send", in.Handlers.ChatSend).Methods(http.MethodPost)

	r.HandleFunc("/", liveness(in.Config)).Methods(http.MethodGet)
	r.HandleFunc("/health", health(in.Start)).Methods(http.MethodGet)
	r.HandleFunc("/ready", ready()).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	return r
}

// NewPrimaryHandler wraps the router with the transport middleware: panic
// recovery outermost, then request logging and the cross-origin policy.
func NewPrimaryHandler(router *mux.Router, cfg Config, logger *zap.Logger, measures HTTPMeasures) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)
	chain := alice.New(
		recovery(logger, cfg.Production()),
		requestLogging(logger, measures),
		cors,
	)
	return chain.Then(router)
}

func liveness(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"message":     "AquaPump API is running",
			"version":     Version,
			"environment": cfg.Environment,
		})
	}
}

func health(start startTime) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		now := time.Now().UTC()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": now.Format(time.RFC3339),
			"uptime":    now.Sub(time.Time(start)).Seconds(),
		})
	}
}

func ready() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ready",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "Not Found",
		"path":  r.URL.Path,
	})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// recovery turns an escaped panic into the structured internal error
// response. The panic detail is withheld from production callers.
func recovery(logger *zap.Logger, production bool) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("request handler panicked",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path))
					body := map[string]any{"error": "Internal Server Error"}
					if production {
						body["message"] = "An error occurred"
					} else {
						body["message"] = panicMessage(rec)
					}
					writeJSON(w, http.StatusInternalServerError, body)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func panicMessage(rec any) string {
	if err, ok := rec.(error); ok {
		return err.Error()
	}
	if s, ok := rec.(string); ok {
		return s
	}
	return "unexpected error"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogging logs every request at the transport boundary and feeds the
// request counters.
func requestLogging(logger *zap.Logger, measures HTTPMeasures) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			begin := time.Now()
			next.ServeHTTP(recorder, r)
			elapsed := time.Since(begin)

			measures.RequestCount.WithLabelValues(r.URL.Path, strconv.Itoa(recorder.status)).Inc()
			measures.RequestDuration.WithLabelValues(r.URL.Path).Observe(elapsed.Seconds())

			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", recorder.status),
				zap.Duration("duration", elapsed),
			)
		})
	}
}
