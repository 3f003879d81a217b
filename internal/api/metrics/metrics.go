// Package metrics defines and registers the custom Prometheus metrics of
// the directory API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from the echoprometheus middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts projects written by submission or import.
// Label:
//   - source: "submit", "import" or "seed"
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects written, by source.",
	},
	[]string{"source"},
)

// ProjectsDeletedTotal counts project records actually removed.
// Label:
//   - mode: "single" or "bulk"
var ProjectsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_deleted_total",
		Help:      "Total number of projects removed, by delete mode.",
	},
	[]string{"mode"},
)

// VotesTotal counts accepted votes.
var VotesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Total number of votes recorded.",
	},
)

// ImportItemsTotal counts import items by outcome.
// Label:
//   - result: "imported" or "skipped"
var ImportItemsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_items_total",
		Help:      "Total number of import items processed, by result.",
	},
	[]string{"result"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatMessagesTotal counts messages appended to chat boards.
var ChatMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages sent.",
	},
)

// ── Mutation dispatcher ───────────────────────────────────────────────────────

// MutationQueueDepth tracks pending keyed mutations per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MutationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mutation_queue_depth",
		Help:      "Current number of mutations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
