// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	allocatedBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lumen",
			Subsystem: "engine",
			Name:      "allocated_bytes",
			Help:      "Bytes currently allocated, by storage class",
		},
		[]string{"storage"},
	)

	allocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "engine",
			Name:      "allocations_total",
			Help:      "Total number of allocations, by storage class",
		},
		[]string{"storage"},
	)

	freesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "engine",
			Name:      "frees_total",
			Help:      "Total number of frees, by storage class",
		},
		[]string{"storage"},
	)

	transferBytesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "engine",
			Name:      "transfer_bytes_total",
			Help:      "Total bytes moved by engine copies, by sync mode",
		},
		[]string{"mode"},
	)
)

func init() {
	prometheus.MustRegister(allocatedBytes, allocationsTotal, freesTotal, transferBytesTotal)
}

// Metrics records allocator and transfer activity for one engine.
// The zero value is ready to use; all engines share the process-wide
// collectors.
type Metrics struct{}

// RecordAlloc accounts a successful allocation.
func (Metrics) RecordAlloc(storage Storage, byteSize int) {
	allocatedBytes.WithLabelValues(storage.String()).Add(float64(byteSize))
	allocationsTotal.WithLabelValues(storage.String()).Inc()
}

// RecordFree accounts a free.
func (Metrics) RecordFree(storage Storage, byteSize int) {
	allocatedBytes.WithLabelValues(storage.String()).Sub(float64(byteSize))
	freesTotal.WithLabelValues(storage.String()).Inc()
}

// RecordCopy accounts a completed transfer.
func (Metrics) RecordCopy(mode SyncMode, byteSize int) {
	transferBytesTotal.WithLabelValues(mode.String()).Add(float64(byteSize))
}
