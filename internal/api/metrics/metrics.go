// Package metrics defines and registers all custom Prometheus metrics for the
// records portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; the /metrics endpoint exposes them next to the HTTP middleware
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "records"

// ── Authentication ────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_input" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts created staff records.
// Label:
//   - mode: "bootstrap" for the first record, "admin" afterwards
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of staff records created through signup.",
	},
	[]string{"mode"},
)

// ── Password reset ────────────────────────────────────────────────────────────

// ResetRequestsTotal counts phase-one reset requests that passed validation.
var ResetRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_requests_total",
		Help:      "Total number of accepted password reset requests.",
	},
)

// ResetConfirmationsTotal counts phase-two confirmations.
// Label:
//   - result: "success", "invalid_token", "wrong_type", "invalid_input" or "error"
var ResetConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_confirmations_total",
		Help:      "Total number of password reset confirmations, by result.",
	},
	[]string{"result"},
)

// ResetDeliveriesTotal counts reset notices handed to the delivery sink.
// Label:
//   - result: "delivered", "failed" or "dropped" (queue full)
var ResetDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reset_deliveries_total",
		Help:      "Total number of reset notices processed by the delivery queue.",
	},
	[]string{"result"},
)

// ResetQueueDepth tracks notices waiting in each delivery worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ResetQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reset_queue_depth",
		Help:      "Current number of reset notices pending in each delivery worker channel.",
	},
	[]string{"worker_id"},
)

// ── Route gate ────────────────────────────────────────────────────────────────

// GateDecisionsTotal counts route gate verdicts.
// Labels:
//   - action: "allow" or "redirect"
//   - rule: the name of the rule that matched
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route gate decisions, by action and rule.",
	},
	[]string{"action", "rule"},
)
