// Package metrics defines and registers all custom Prometheus metrics for the
// chirp API. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chirp"

// ChirpsCreatedTotal counts successfully created chirps.
var ChirpsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chirps_created_total",
		Help:      "Total number of chirps created.",
	},
)

// ChirpsUpdatedTotal counts successful chirp message edits.
var ChirpsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chirps_updated_total",
		Help:      "Total number of chirps updated.",
	},
)

// ChirpsDeletedTotal counts successful chirp deletions.
var ChirpsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chirps_deleted_total",
		Help:      "Total number of chirps deleted.",
	},
)

// QuotaRejectionsTotal counts creates rejected by the per-user cap.
var QuotaRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_rejections_total",
		Help:      "Total number of chirp creations rejected by the per-user quota.",
	},
)

// ForbiddenTotal counts mutations denied by the ownership policy.
// Label:
//   - operation: "edit", "update", or "delete"
var ForbiddenTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forbidden_total",
		Help:      "Total number of chirp mutations denied by the ownership policy.",
	},
	[]string{"operation"},
)

// AuditQueueDepth tracks the current number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts audit events that failed to persist.
// Label:
//   - action: the chirp lifecycle action that failed to record
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
	[]string{"action"},
)
