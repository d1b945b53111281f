// Package metrics defines and registers the custom Prometheus metrics for the
// ticketec order API. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticketec"

// TicketsCreatedTotal counts committed tickets.
// Label:
//   - payment_method: "Tarjeta", "Efectivo" or "Transferencia"
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets committed, by payment method.",
	},
	[]string{"payment_method"},
)

// TicketTotalAmount observes the grand total of each committed ticket.
var TicketTotalAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ticket_total_amount",
		Help:      "Distribution of ticket grand totals.",
		Buckets:   []float64{25, 50, 100, 200, 400, 800},
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "user_not_found" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "rejected" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)
