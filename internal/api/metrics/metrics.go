// Package metrics defines the service's custom Prometheus metrics. Every
// metric is registered with the default registry at package init through
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Tracking ──────────────────────────────────────────────────────────────────

// TrackingLookupsTotal counts public tracking lookups.
// Label:
//   - result: "found" or "not_found"
var TrackingLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of tracking code lookups, by result.",
	},
	[]string{"result"},
)

// ActiveStreams is the number of open progress streams.
var ActiveStreams = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_streams",
		Help:      "Current number of open tracking progress streams.",
	},
)

// ── Change notifications ──────────────────────────────────────────────────────

// ShipmentChangesTotal counts administrative writes.
// Label:
//   - kind: shipment_created, shipment_updated, shipment_deleted, timeline_appended
var ShipmentChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipment_changes_total",
		Help:      "Total number of shipment changes, by kind.",
	},
	[]string{"kind"},
)

// NotificationsPublishedTotal counts publish attempts.
// Label:
//   - result: "ok", "error" or "dropped" (dispatch queue full)
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of change notifications published, by result.",
	},
	[]string{"result"},
)

// NotificationsDeliveredTotal counts notifications handed to subscribers.
// Label:
//   - source: "push" or "poll"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of change notifications delivered to subscribers, by transport.",
	},
	[]string{"source"},
)

// DispatchQueueDepth tracks the notifications waiting in each dispatcher shard.
var DispatchQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dispatch_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PollDuration measures one poll sweep over all watched shipments.
var PollDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Duration of a poll sweep over watched shipments.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Invoices ──────────────────────────────────────────────────────────────────

// InvoicesRenderedTotal counts invoice downloads.
// Label:
//   - result: "ok" or "error"
var InvoicesRenderedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoices_rendered_total",
		Help:      "Total number of invoice documents rendered, by result.",
	},
	[]string{"result"},
)
