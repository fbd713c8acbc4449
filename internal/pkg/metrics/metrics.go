// Package metrics defines the custom Prometheus metrics for the messaging
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics register with the default registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "messaging"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "unauthorized"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts token refresh attempts.
// Label:
//   - result: "success" or "unauthorized"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of token refresh attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Message metrics ───────────────────────────────────────────────────────────

// MessagesSentTotal counts messages persisted through POST /messages.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages created.",
	},
)

// MessagesDedupTotal counts idempotency-key checks on message sends.
// Label:
//   - result: "hit" (replay, no insert) or "miss" (new message)
var MessagesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_dedup_total",
		Help:      "Total number of idempotency checks on sends, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── User metrics ──────────────────────────────────────────────────────────────

// PicturesUploadedTotal counts successful profile picture uploads.
var PicturesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pictures_uploaded_total",
		Help:      "Total number of profile pictures stored.",
	},
)
