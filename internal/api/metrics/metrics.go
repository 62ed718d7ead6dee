// Package metrics defines and registers all custom Prometheus metrics for the
// hotel API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on import and
// exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications that were delivered.
// Label:
//   - kind: "email", "event" or "email+event"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered by the dispatcher.",
	},
	[]string{"kind"},
)

// NotificationsFailedTotal counts notifications whose delivery returned an error.
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of notifications that failed delivery.",
	},
	[]string{"kind"},
)

// NotificationsDroppedTotal counts notifications dropped because the worker
// queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped on a full queue.",
	},
)

// NotificationQueueDepth tracks the number of notifications waiting in each worker channel.
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

// NotificationDeliveryDuration measures how long one delivery takes.
var NotificationDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_delivery_duration_seconds",
		Help:      "Duration of a single notification delivery.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"kind"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentsInitializedTotal counts checkouts opened with the gateway.
// Label:
//   - purpose: "room_booking", "hall_reservation", "laundry_order" or "dish_order"
var PaymentsInitializedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_initialized_total",
		Help:      "Total number of payments initialized, by purpose.",
	},
	[]string{"purpose"},
)

// PaymentWebhooksTotal counts gateway webhook calls.
// Label:
//   - result: "accepted", "rejected_signature" or "error"
var PaymentWebhooksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_webhooks_total",
		Help:      "Total number of payment webhooks received, by result.",
	},
	[]string{"result"},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// AccessDeniedTotal counts requests rejected by authentication or authorization.
// Label:
//   - kind: the credential kind or deny reason (e.g. "CredentialExpired", "TaskNotAssigned")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the access layer.",
	},
	[]string{"kind"},
)

// BookingsCreatedTotal counts new room bookings, hall reservations and orders.
// Label:
//   - kind: "room", "hall", "laundry" or "dish"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings and orders created, by kind.",
	},
	[]string{"kind"},
)
