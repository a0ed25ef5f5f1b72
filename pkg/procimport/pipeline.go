package procimport

import (
	"bytes"
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/metrics"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/reconcile"
)

const (
	// SubmitSuccessMessage is shown to the user after the backend accepts an
	// import.
	SubmitSuccessMessage = "Importação concluída!"
	// SubmitFailureMessage is shown to the user when the backend rejects an
	// import.
	SubmitFailureMessage = "Falha na importação. Verifique o arquivo e as colunas."
)

// Submitter uploads the original workbook to the backend.
type Submitter interface {
	SubmitImport(ctx context.Context, filename string, content io.Reader) error
}

// Pipeline runs the preview, reconciliation and submission stages. Each call
// is independent; a Pipeline holds no per-run state.
type Pipeline struct {
	opts       Options
	reconciler *reconcile.Reconciler
	submitter  Submitter
	logger     *zap.Logger
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts Options, reconciler *reconcile.Reconciler, submitter Submitter, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		opts:       opts,
		reconciler: reconciler,
		submitter:  submitter,
		logger:     logger.Named("pipeline"),
	}
}

// Preview parses a workbook into an import batch.
func (p *Pipeline) Preview(data []byte, bookName string) (*models.ImportResult, error) {
	result, err := Parse(data, bookName, p.opts)
	metrics.ImportsParsed.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		p.logger.Warn("Failed to parse workbook",
			zap.String("book", bookName),
			zap.Error(err))
		return nil, err
	}

	metrics.ProcessesParsed.Add(float64(len(result.Processos)))
	p.logger.Info("Parsed workbook",
		zap.String("book", bookName),
		zap.String("batch_id", result.BatchID),
		zap.String("sheet", result.Sheet),
		zap.Int("processos", result.Summary.Processos),
		zap.Int("itens", result.Summary.Itens),
		zap.Int("fornecedores", result.Summary.Fornecedores),
		zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// Reconcile runs a supplier reconciliation pass over the batch's suppliers.
func (p *Pipeline) Reconcile(ctx context.Context, result *models.ImportResult, autoProvision bool) *reconcile.Report {
	return p.reconciler.Run(ctx, result.Fornecedores, autoProvision)
}

// Submit uploads the original workbook bytes.
func (p *Pipeline) Submit(ctx context.Context, bookName string, data []byte) error {
	err := p.submitter.SubmitImport(ctx, bookName, bytes.NewReader(data))
	metrics.Submissions.WithLabelValues(metrics.Status(err)).Inc()
	if err != nil {
		p.logger.Error("Import submission failed",
			zap.String("book", bookName),
			zap.Error(err))
		return err
	}
	p.logger.Info("Import submitted", zap.String("book", bookName))
	return nil
}
