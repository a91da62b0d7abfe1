// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// SettingMetrics instruments the settings service. Methods are no-ops on a nil receiver.
type SettingMetrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	AssetUploadsTotal *prometheus.CounterVec
}

func NewSettingMetrics() *SettingMetrics {
	return &SettingMetrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_settings_operations_total",
				Help: "Settings operations by name and result",
			},
			[]string{"operation", "result"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "platform_settings_operation_duration_seconds",
				Help:    "Latency of settings operations",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		AssetUploadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "platform_settings_asset_uploads_total",
				Help: "Object store uploads by slot and result",
			},
			[]string{"slot", "result"},
		),
	}
}

func (m *SettingMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.OperationsTotal, m.OperationDuration, m.AssetUploadsTotal}
}

func (m *SettingMetrics) ObserveOperation(operation string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.OperationsTotal.WithLabelValues(operation, result(success)).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *SettingMetrics) ObserveUpload(slot string, err error) {
	if m == nil {
		return
	}
	m.AssetUploadsTotal.WithLabelValues(slot, result(err == nil)).Inc()
}

func result(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}
