// Package metrics defines all custom Prometheus metrics for the bookkeeping
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookkeeping"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsCreatedTotal counts newly created accounts.
// Label:
//   - type: "Checking", "Savings", "CreditCard", or "Investment"
var AccountsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_created_total",
		Help:      "Total number of accounts created, by account type.",
	},
	[]string{"type"},
)

// AccountVersionConflictsTotal counts version-conditioned account writes
// rejected by the store. Each conflict means a caller must re-read and retry.
var AccountVersionConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_version_conflicts_total",
		Help:      "Total number of optimistic-concurrency conflicts on account writes.",
	},
)

// ── Analytics metrics ─────────────────────────────────────────────────────────

// SummaryRequestsTotal counts analytics summary requests.
// Label:
//   - result: "ok" or "error"
var SummaryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_requests_total",
		Help:      "Total number of analytics summary requests, by result.",
	},
	[]string{"result"},
)

// ── Export metrics ────────────────────────────────────────────────────────────

// ExportsTotal counts CSV export attempts.
// Label:
//   - result: "ok", "empty" (no transactions), or "error"
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of CSV export requests, by result.",
	},
	[]string{"result"},
)
