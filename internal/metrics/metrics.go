/*
 * Copyright © 2025 Kaleido, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var METRICS_SUBSYSTEM = "vdr"

const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

type VDRMetrics interface {
	Registry() *prometheus.Registry
	RecordRegistration(kind, outcome string)
	RecordResolution(kind, outcome string)
}

type vdrMetrics struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	resolutions   *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) VDRMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &vdrMetrics{registry: registry}

	m.registrations = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "registrations_total",
		Help: "Ledger registrations by resource kind and outcome", Subsystem: METRICS_SUBSYSTEM}, []string{"kind", "outcome"})
	m.resolutions = prometheus.NewCounterVec(prometheus.CounterOpts{Name: "resolutions_total",
		Help: "Ledger resolutions by resource kind and outcome", Subsystem: METRICS_SUBSYSTEM}, []string{"kind", "outcome"})

	registry.MustRegister(m.registrations, m.resolutions)
	return m
}

func (m *vdrMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *vdrMetrics) RecordRegistration(kind, outcome string) {
	m.registrations.WithLabelValues(kind, outcome).Inc()
}

func (m *vdrMetrics) RecordResolution(kind, outcome string) {
	m.resolutions.WithLabelValues(kind, outcome).Inc()
}
