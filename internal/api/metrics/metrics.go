// Package metrics defines and registers all custom Prometheus metrics for the
// signature verification API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "firmas"

// AssignmentsCreatedTotal counts work assignments created.
// Label:
//   - work_type: "analista" (screening) or "perito" (expert review)
var AssignmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_created_total",
		Help:      "Total number of work assignments created, by work type.",
	},
	[]string{"work_type"},
)

// ScreeningsRecordedTotal counts screening outcomes committed.
// Label:
//   - escalated: "yes" when the analyst flagged the ficha for expert review
var ScreeningsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screenings_recorded_total",
		Help:      "Total number of screening outcomes recorded.",
	},
	[]string{"escalated"},
)

// VerdictsRecordedTotal counts accepted expert verdicts.
// Label:
//   - result: "autentica" or "falsa"
var VerdictsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_recorded_total",
		Help:      "Total number of expert verdicts recorded, by result.",
	},
	[]string{"result"},
)

// VerdictsRejectedTotal counts verdicts rejected during submission.
// Label:
//   - reason: "validation" (bad report or flags) or "storage"
var VerdictsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verdicts_rejected_total",
		Help:      "Total number of expert verdicts rejected, by reason.",
	},
	[]string{"reason"},
)

// ExportDuration measures how long a snapshot export takes end-to-end.
var ExportDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of report snapshot exports.",
		Buckets:   prometheus.DefBuckets,
	},
)
