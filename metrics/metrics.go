// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics exposes the ledger meters. Meters are no-ops until
// InitializePrometheusMetrics installs the Prometheus registry.
package metrics

import (
	"net/http"
	"sync"
)

var registry Registry = noopRegistry{}

// Registry creates named meters and serves them over HTTP.
type Registry interface {
	CounterVec(name string, labels []string) CountVecMeter
	Gauge(name string) GaugeMeter
	Histogram(name string, buckets []int64) HistogramMeter
	Handler() http.Handler
}

// HTTPHandler serves the installed registry in the Prometheus text format.
func HTTPHandler() http.Handler {
	return registry.Handler()
}

// BucketOps buckets operation durations in microseconds.
var BucketOps = []int64{0, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}

type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

type HistogramMeter interface {
	Observe(int64)
}

// lazy builds the meter on first use, so package-level meters bind to the
// registry installed by then.
func lazy[T any](build func() T) func() T {
	var (
		once  sync.Once
		meter T
	)
	return func() T {
		once.Do(func() { meter = build() })
		return meter
	}
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return lazy(func() CountVecMeter { return registry.CounterVec(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return lazy(func() GaugeMeter { return registry.Gauge(name) })
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return lazy(func() HistogramMeter { return registry.Histogram(name, buckets) })
}
