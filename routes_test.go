// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquapump/aquapump/store"
)

func stubHandler(body string) store.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(body))
	})
}

func newTestRoutesIn() RoutesIn {
	registry := prometheus.NewRegistry()
	return RoutesIn{
		Config:   Config{Environment: "development", CORSOrigins: []string{"*"}},
		Logger:   zap.NewNop(),
		Start:    startTime(time.Now().UTC().Add(-time.Minute)),
		Measures: newHTTPMeasures(registry),
		Gatherer: registry,
		Handlers: PrimaryHandlersIn{
			PumpsList:      stubHandler(`[]`),
			PumpsGet:       stubHandler(`{}`),
			PumpsCreate:    stubHandler(`{}`),
			PumpsUpdate:    stubHandler(`{}`),
			PumpsDelete:    stubHandler(`{"success":true}`),
			PumpsLogsList:  stubHandler(`[]`),
			PumpsLogsWrite: stubHandler(`{}`),
			ChatSend:       stubHandler(`{"reply":"hi"}`),
		},
	}
}

func TestProbeEndpoints(t *testing.T) {
	in := newTestRoutesIn()
	router := NewRouter(in)

	t.Run("Liveness", func(t *testing.T) {
		assert := assert.New(t)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(http.StatusOK, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal("ok", body["status"])
		assert.Equal("AquaPump API is running", body["message"])
		assert.Equal(Version, body["version"])
		assert.Equal("development", body["environment"])
	})

	t.Run("Health reports uptime", func(t *testing.T) {
		assert := assert.New(t)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(http.StatusOK, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal("healthy", body["status"])
		assert.NotEmpty(body["timestamp"])
		uptime, ok := body["uptime"].(float64)
		require.True(t, ok)
		assert.Greater(uptime, 59.0)
	})

	t.Run("Readiness", func(t *testing.T) {
		assert := assert.New(t)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(http.StatusOK, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal("ready", body["status"])
	})
}

func TestOperationRouting(t *testing.T) {
	router := NewRouter(newTestRoutesIn())

	operations := []struct {
		Path string
		Body string
	}{
		{"/api/rpc/pumps.list", `[]`},
		{"/api/rpc/pumps.delete", `{"success":true}`},
		{"/api/rpc/chat.send", `{"reply":"hi"}`},
	}
	for _, op := range operations {
		t.Run(op.Path, func(t *testing.T) {
			assert := assert.New(t)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, op.Path, nil))
			assert.Equal(http.StatusOK, recorder.Code)
			assert.JSONEq(op.Body, recorder.Body.String())
		})
	}
}

func TestNotFoundEnvelope(t *testing.T) {
	router := NewRouter(newTestRoutesIn())

	testCases := []struct {
		Name   string
		Method string
		Path   string
	}{
		{"Unknown path", http.MethodGet, "/api/rpc/pumps.reboot"},
		{"Wrong method on an operation", http.MethodGet, "/api/rpc/pumps.list"},
		{"Wrong method on a probe", http.MethodPost, "/health"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(t *testing.T) {
			assert := assert.New(t)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(testCase.Method, testCase.Path, nil))
			assert.Equal(http.StatusNotFound, recorder.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal("Not Found", body["error"])
			assert.Equal(testCase.Path, body["path"])
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("pump exploded")
	})

	t.Run("Development exposes the panic message", func(t *testing.T) {
		assert := assert.New(t)
		recorder := httptest.NewRecorder()
		recovery(zap.NewNop(), false)(panicking).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(http.StatusInternalServerError, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal("Internal Server Error", body["error"])
		assert.Equal("pump exploded", body["message"])
	})

	t.Run("Production withholds the panic message", func(t *testing.T) {
		assert := assert.New(t)
		recorder := httptest.NewRecorder()
		recovery(zap.NewNop(), true)(panicking).
			ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(http.StatusInternalServerError, recorder.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		assert.Equal("An error occurred", body["message"])
	})
}

func TestRequestLoggingCountsByStatus(t *testing.T) {
	assert := assert.New(t)

	measures := newHTTPMeasures(prometheus.NewRegistry())
	teapot := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	wrapped := requestLogging(zap.NewNop(), measures)(teapot)
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))
	wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", nil))

	count := testutil.ToFloat64(measures.RequestCount.WithLabelValues("/brew", "418"))
	assert.Equal(float64(2), count)
}

func TestPrimaryHandlerCORSPreflight(t *testing.T) {
	assert := assert.New(t)

	in := newTestRoutesIn()
	handler := NewPrimaryHandler(NewRouter(in), in.Config, zap.NewNop(), in.Measures)

	r := httptest.NewRequest(http.MethodOptions, "/api/rpc/pumps.list", nil)
	r.Header.Set("Origin", "https://marketing.example.com")
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, r)

	assert.Equal("*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(recorder.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestSplitOrigins(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]string{"*"}, splitOrigins(""))
	assert.Equal([]string{"*"}, splitOrigins(" , "))
	assert.Equal([]string{"https://a.example.com", "https://b.example.com"},
		splitOrigins("https://a.example.com, https://b.example.com"))
}
