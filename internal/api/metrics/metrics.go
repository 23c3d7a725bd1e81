// Package metrics defines and registers all custom Prometheus metrics for
// the guardian system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry via promauto at package load;
// the /metrics route is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "guardian"

// ── Threat metrics ────────────────────────────────────────────────────────────

// ThreatsReportedTotal counts submitted threat reports.
// Labels:
//   - type: the threat classification (e.g. "logging")
//   - priority: "low", "medium", or "high"
var ThreatsReportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "threats_reported_total",
		Help:      "Total number of threat reports submitted, by type and priority.",
	},
	[]string{"type", "priority"},
)

// ThreatsVerifiedTotal counts threats that reached verified status.
// Label:
//   - type: the threat classification
var ThreatsVerifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "threats_verified_total",
		Help:      "Total number of threat reports verified, by type.",
	},
	[]string{"type"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDispatchedTotal counts dispatched notifications.
// Labels:
//   - type: notification type ("alert", "threat_verified", "achievement", "system")
//   - result: "delivered" (pushed to an open live session) or "stored" (no session)
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notifications dispatched, by type and delivery result.",
	},
	[]string{"type", "result"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Live session metrics ──────────────────────────────────────────────────────

// LiveSessionsActive tracks currently open WebSocket connections.
var LiveSessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_sessions_active",
		Help:      "Current number of open WebSocket connections.",
	},
)
