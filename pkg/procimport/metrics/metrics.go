// Package metrics holds the prometheus collectors of the import pipeline.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ImportsParsed counts preview parses by status (ok, failed).
	ImportsParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procimport_imports_parsed_total",
			Help: "Planilhas de importação lidas, por status",
		},
		[]string{"status"},
	)

	// ProcessesParsed counts processes produced by successful parses.
	ProcessesParsed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "procimport_processes_parsed_total",
			Help: "Processos agrupados a partir das planilhas",
		},
	)

	// SuppliersReconciled counts reconciliation log entries by outcome.
	SuppliersReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procimport_suppliers_reconciled_total",
			Help: "Decisões de conciliação de fornecedores, por resultado",
		},
		[]string{"outcome"},
	)

	// Submissions counts backend import submissions by status (ok, failed).
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procimport_submissions_total",
			Help: "Envios da planilha ao backend, por status",
		},
		[]string{"status"},
	)
)

// Register registers every collector, tolerating ones already registered.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{ImportsParsed, ProcessesParsed, SuppliersReconciled, Submissions} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Handler serves the metrics of the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Status maps an error to the status label.
func Status(err error) string {
	if err != nil {
		return "failed"
	}
	return "ok"
}
