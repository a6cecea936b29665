// Package metrics defines all custom Prometheus metrics for the employee
// system. It is the single source of truth for metric names, labels, and help
// strings; metrics register themselves with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_system"

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "throttled", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "ok", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// EmployeeMutationsTotal counts write operations on the employee collection.
// Labels:
//   - op: "create", "update", or "delete"
//   - result: "ok", "conflict", "not_found", or "error"
var EmployeeMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_mutations_total",
		Help:      "Total number of employee create/update/delete operations, by result.",
	},
	[]string{"op", "result"},
)
