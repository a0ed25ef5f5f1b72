// Package reconcile makes sure the suppliers listed in an import workbook
// exist in the supplier registry before the batch is submitted.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/metrics"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// DefaultPageSize bounds the single page of existing suppliers fetched per run.
const DefaultPageSize = 1000

// SupplierDirectory is the supplier registry.
type SupplierDirectory interface {
	ListSuppliers(ctx context.Context, limit int) ([]models.SupplierRecord, error)
	CreateSupplier(ctx context.Context, supplier models.SupplierRecord) error
}

// Enricher looks up public registry data for a digits-only CNPJ.
type Enricher interface {
	LookupCNPJ(ctx context.Context, cnpj string) (models.SupplierRecord, error)
}

// Outcome classifies a log entry.
type Outcome string

const (
	OutcomeInfo              Outcome = "info"
	OutcomeExists            Outcome = "exists"
	OutcomeCreated           Outcome = "created"
	OutcomeCreateFailed      Outcome = "create_failed"
	OutcomeBatchLookupFailed Outcome = "batch_lookup_failed"
)

// Entry is one timestamped line of the reconciliation log.
type Entry struct {
	At      time.Time `json:"at"`
	Outcome Outcome   `json:"outcome"`
	CNPJ    string    `json:"cnpj,omitempty"`
	Message string    `json:"message"`
}

// String renders the entry as "[HH:MM:SS] message".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.At.Format("15:04:05"), e.Message)
}

// Report is the outcome of one reconciliation pass.
type Report struct {
	Entries    []Entry `json:"entries"`
	Candidates int     `json:"candidates"`
	Existing   int     `json:"existing"`
	Created    int     `json:"created"`
	Failed     int     `json:"failed"`
	// Skipped counts missing suppliers left alone because auto-provisioning
	// was off.
	Skipped int  `json:"skipped"`
	Aborted bool `json:"aborted"`
}

// Lines renders every entry in order.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		lines = append(lines, e.String())
	}
	return lines
}

// Reconciler runs reconciliation passes against a directory and an enricher.
type Reconciler struct {
	directory SupplierDirectory
	enricher  Enricher
	pageSize  int
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithPageSize sets the number of existing suppliers fetched per run.
func WithPageSize(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.pageSize = n
		}
	}
}

// WithClock overrides the entry timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

// NewReconciler creates a Reconciler. A nil enricher creates suppliers from
// the workbook data alone.
func NewReconciler(directory SupplierDirectory, enricher Enricher, logger *zap.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		directory: directory,
		enricher:  enricher,
		pageSize:  DefaultPageSize,
		logger:    logger.Named("reconcile"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Dedupe keeps the first supplier for each digits-only CNPJ, in order of
// first appearance, and drops rows without digits. The returned records
// are copies carrying the cleaned CNPJ; the input is not modified.
func Dedupe(suppliers []models.SupplierRecord) []models.SupplierRecord {
	seen := make(map[string]struct{}, len(suppliers))
	result := make([]models.SupplierRecord, 0, len(suppliers))
	for _, s := range suppliers {
		cnpj := models.CleanCNPJ(s.CNPJ)
		if cnpj == "" {
			continue
		}
		if _, ok := seen[cnpj]; ok {
			continue
		}
		seen[cnpj] = struct{}{}
		s.CNPJ = cnpj
		result = append(result, s)
	}
	return result
}

// Run reconciles suppliers with the directory. Missing suppliers are created
// only when autoProvision is set. Failures never abort the caller: they are
// recorded in the report and the pass moves on.
func (r *Reconciler) Run(ctx context.Context, suppliers []models.SupplierRecord, autoProvision bool) *Report {
	report := &Report{Entries: []Entry{}}
	if len(suppliers) == 0 {
		return report
	}

	r.record(report, OutcomeInfo, "", fmt.Sprintf("Verificando %d fornecedor(es) da aba FORNECEDORES...", len(suppliers)))

	candidates := Dedupe(suppliers)
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		return report
	}

	existing, err := r.directory.ListSuppliers(ctx, r.pageSize)
	if err != nil {
		r.logger.Error("Failed to list existing suppliers", zap.Error(err))
		report.Aborted = true
		r.record(report, OutcomeBatchLookupFailed, "", "Não foi possível validar/cadastrar fornecedores. Prosseguindo...")
		return report
	}

	known := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		if cnpj := models.CleanCNPJ(s.CNPJ); cnpj != "" {
			known[cnpj] = struct{}{}
		}
	}

	for _, candidate := range candidates {
		if _, ok := known[candidate.CNPJ]; ok {
			report.Existing++
			r.record(report, OutcomeExists, candidate.CNPJ, fmt.Sprintf("Fornecedor %s já existe — OK.", candidate.CNPJ))
			continue
		}
		if !autoProvision {
			report.Skipped++
			continue
		}

		if err := r.provision(ctx, candidate); err != nil {
			r.logger.Warn("Failed to provision supplier",
				zap.String("cnpj", candidate.CNPJ),
				zap.Error(err))
			report.Failed++
			r.record(report, OutcomeCreateFailed, candidate.CNPJ, fmt.Sprintf("Falha ao cadastrar fornecedor %s. Prosseguindo...", candidate.CNPJ))
			continue
		}
		known[candidate.CNPJ] = struct{}{}
		report.Created++
		r.record(report, OutcomeCreated, candidate.CNPJ, fmt.Sprintf("Fornecedor %s cadastrado (BrasilAPI + manual).", candidate.CNPJ))
	}

	return report
}

// provision enriches and creates one supplier. Workbook values win over
// enrichment values; empty workbook fields take the enrichment value.
func (r *Reconciler) provision(ctx context.Context, candidate models.SupplierRecord) error {
	payload := candidate
	if r.enricher != nil {
		enriched, err := r.enricher.LookupCNPJ(ctx, candidate.CNPJ)
		if err != nil {
			return fmt.Errorf("enrich %s: %w", candidate.CNPJ, err)
		}
		payload.FillFrom(enriched)
	}
	if err := r.directory.CreateSupplier(ctx, payload); err != nil {
		return fmt.Errorf("create %s: %w", candidate.CNPJ, err)
	}
	return nil
}

func (r *Reconciler) record(report *Report, outcome Outcome, cnpj, message string) {
	report.Entries = append(report.Entries, Entry{
		At:      r.now(),
		Outcome: outcome,
		CNPJ:    cnpj,
		Message: message,
	})
	metrics.SuppliersReconciled.WithLabelValues(string(outcome)).Inc()
	r.logger.Info(message, zap.String("outcome", string(outcome)), zap.String("cnpj", cnpj))
}
