// SPDX-FileCopyrightText: 2025 AquaPump Systems
// SPDX-License-Identifier: Apache-2.0

package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Names of the metrics emitted by the storage adapters.
const (
	QuerySuccessCounter = "db_query_success_count"
	QueryFailureCounter = "db_query_failure_count"
)

// Measures describes the storage-layer metrics. Adapters bump one counter per
// round trip, labeled by operation kind.
type Measures struct {
	QuerySuccessCount *prometheus.CounterVec
	QueryFailureCount *prometheus.CounterVec
}

// NewMeasures builds and registers the storage metrics on the given registerer.
func NewMeasures(registerer prometheus.Registerer) Measures {
	m := Measures{
		QuerySuccessCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QuerySuccessCounter,
			Help: "The total number of successful storage round trips",
		}, []string{"type"}),
		QueryFailureCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: QueryFailureCounter,
			Help: "The total number of failed storage round trips",
		}, []string{"type"}),
	}
	registerer.MustRegister(m.QuerySuccessCount, m.QueryFailureCount)
	return m
}

// ProvideMetrics makes the storage metrics available to the fx graph.
func ProvideMetrics() fx.Option {
	return fx.Provide(NewMeasures)
}
