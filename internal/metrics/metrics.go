// metrics.go
//
// A site builder data service: ordered site components and static HTML/CSS export
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of sitebuilder.
// sitebuilder is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// sitebuilder is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with sitebuilder.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package metrics records domain metrics for the site builder: component
// mutations, renumber passes and exports. HTTP request metrics come from the
// fiberprometheus middleware; this package covers what it cannot see.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives domain observations. Services accept any Recorder so tests
// can run without a registry.
type Recorder interface {
	IncComponentMutation(operation string)
	ObserveRenumber(d time.Duration, rows int)
	IncExport(format string)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) IncComponentMutation(string)        {}
func (NoopRecorder) ObserveRenumber(time.Duration, int) {}
func (NoopRecorder) IncExport(string)                   {}

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	mutations       *prometheus.CounterVec
	renumberSeconds prometheus.Histogram
	renumberRows    prometheus.Histogram
	exports         *prometheus.CounterVec
}

// NewPrometheusRecorder builds the collectors and registers them with reg.
// A nil reg uses the default registerer, the one fiberprometheus serves at /metrics.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	pr := &PrometheusRecorder{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "component_mutations_total",
			Help:      "Component mutations by operation",
		}, []string{"operation"}),
		renumberSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "renumber_duration_seconds",
			Help:      "Duration of component renumber passes",
			Buckets:   prometheus.DefBuckets,
		}),
		renumberRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "renumber_components",
			Help:      "Components visited per renumber pass",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Site exports by format",
		}, []string{"format"}),
	}

	reg.MustRegister(pr.mutations, pr.renumberSeconds, pr.renumberRows, pr.exports)
	return pr
}

func (p *PrometheusRecorder) IncComponentMutation(operation string) {
	if p == nil {
		return
	}
	p.mutations.WithLabelValues(operation).Inc()
}

func (p *PrometheusRecorder) ObserveRenumber(d time.Duration, rows int) {
	if p == nil {
		return
	}
	p.renumberSeconds.Observe(d.Seconds())
	p.renumberRows.Observe(float64(rows))
}

func (p *PrometheusRecorder) IncExport(format string) {
	if p == nil {
		return
	}
	p.exports.WithLabelValues(format).Inc()
}
