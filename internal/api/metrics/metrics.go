// Package metrics defines the custom Prometheus metrics for the plant-care
// API. It is the single source of truth for metric names, labels, and help
// strings; the promauto registrations run at package init, before the HTTP
// server starts.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "plantcare"

// ── OTP metrics ───────────────────────────────────────────────────────────────

// OTPIssuedTotal counts codes successfully persisted.
// Label:
//   - purpose: "login" or "register"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of one-time codes issued, by purpose.",
	},
	[]string{"purpose"},
)

// OTPVerifyTotal counts verification attempts by their resolution.
// Labels:
//   - purpose: "login" or "register"
//   - result: "logged_in", "profile_pending", "invalid", "expired",
//     "exhausted", "not_found"
var OTPVerifyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verify_total",
		Help:      "Total number of code verification attempts, by resolution.",
	},
	[]string{"purpose", "result"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts session tokens minted.
// Label:
//   - flow: "password", "otp", "registration"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued, by login flow.",
	},
	[]string{"flow"},
)

// AuthRejectionsTotal counts requests turned away by the session middleware.
// Label:
//   - reason: "missing", "expired", "invalid"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the session middleware.",
	},
	[]string{"reason"},
)

// ── SMS metrics ───────────────────────────────────────────────────────────────

// SMSSendTotal counts delivery outcomes.
// Label:
//   - result: "ok", "error", "dropped"
var SMSSendTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sms_send_total",
		Help:      "Total number of SMS delivery attempts, by outcome.",
	},
	[]string{"result"},
)

// SMSQueueDepth tracks the number of messages waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SMSQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sms_queue_depth",
		Help:      "Current number of SMS messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
