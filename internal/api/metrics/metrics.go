// Package metrics defines and registers all custom Prometheus metrics
// for the NexaBoard API. It is the single source of truth for metric
// names, labels, and help strings; metrics register themselves with the
// default registry at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nexaboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "member", "manager", or "admin"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// SessionRecoveriesTotal counts artifact recovery attempts on /me.
// Label:
//   - result: "success", "expired", "revoked", or "invalid"
var SessionRecoveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_recoveries_total",
		Help:      "Total number of session recovery attempts, by result.",
	},
	[]string{"result"},
)

// ── Board metrics ─────────────────────────────────────────────────────────────

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "low", "medium", or "high"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// MessagesCreatedTotal counts posted messages.
// Label:
//   - type: "message", "decision", or "announcement"
var MessagesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages posted, by type.",
	},
	[]string{"type"},
)
