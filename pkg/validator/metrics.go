/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultValid = "valid"
	resultError = "error"
)

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clusterspec_validation_total",
			Help: "Total number of cluster specification validations",
		},
		[]string{"result"}, // valid, structural, semantic or error
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clusterspec_validation_duration_seconds",
			Help:    "Duration of cluster specification validation in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)
)

func observe(err error, d time.Duration) {
	validationDuration.Observe(d.Seconds())
	validationTotal.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	if err == nil {
		return resultValid
	}
	var viol *Violation
	if errors.As(err, &viol) {
		return string(viol.Kind)
	}
	return resultError
}
