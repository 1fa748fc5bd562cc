/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package metrics exposes Prometheus instrumentation for a registry instance.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "entity_registry"

// Metrics holds the collectors of one registry. A nil *Metrics records nothing.
type Metrics struct {
	created   prometheus.Counter
	transfers prometheus.Counter
	failures  *prometheus.CounterVec
	entities  prometheus.Gauge
	owners    prometheus.Gauge
}

// New creates the collectors and registers them on reg when reg is non-nil.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "created_total",
			Help:      "Count of entities minted.",
		}),
		transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "transfers_total",
			Help:      "Count of successful ownership transfers.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "failures_total",
			Help:      "Count of rejected or failed operations by operation and reason.",
		}, []string{"op", "reason"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "entities",
			Help:      "Number of entities in the canonical store.",
		}),
		owners: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "owners",
			Help:      "Number of owner buckets in the owner index.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.created, m.transfers, m.failures, m.entities, m.owners)
	}
	return m
}

// RecordCreated records a minted entity.
func (m *Metrics) RecordCreated() {
	if m == nil {
		return
	}
	m.created.Inc()
}

// RecordTransfer records a successful transfer.
func (m *Metrics) RecordTransfer() {
	if m == nil {
		return
	}
	m.transfers.Inc()
}

// RecordFailure records an operation that returned an error.
func (m *Metrics) RecordFailure(op, reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op, reason).Inc()
}

// SetSize publishes the current store sizes.
func (m *Metrics) SetSize(entities, owners int) {
	if m == nil {
		return
	}
	m.entities.Set(float64(entities))
	m.owners.Set(float64(owners))
}
