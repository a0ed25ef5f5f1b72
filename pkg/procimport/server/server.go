// Package server exposes the import pipeline over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/config"
	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/metrics"
)

const (
	uploadField     = "arquivo"
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 10 * time.Second
)

// Server serves the preview, reconciliation and submission endpoints.
type Server struct {
	pipeline      *procimport.Pipeline
	cfg           config.HTTPConfig
	autoProvision bool
	logger        *zap.Logger
}

// New creates a Server. autoProvision is the default for the supplier
// endpoint when the request does not say.
func New(pipeline *procimport.Pipeline, cfg config.HTTPConfig, autoProvision bool, logger *zap.Logger) *Server {
	return &Server{
		pipeline:      pipeline,
		cfg:           cfg,
		autoProvision: autoProvision,
		logger:        logger.Named("server"),
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/importacao")
	api.POST("/preview", s.handlePreview)
	api.POST("/fornecedores", s.handleSuppliers)
	api.POST("/submit", s.handleSubmit)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) corsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	if len(s.cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowHeaders("Authorization", requestIDHeader)
	corsConfig.AddExposeHeaders(requestIDHeader)
	return corsConfig
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) handlePreview(c *gin.Context) {
	name, data, ok := s.readUpload(c)
	if !ok {
		return
	}

	result, err := s.pipeline.Preview(data, name)
	if err != nil {
		s.parseFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSuppliers(c *gin.Context) {
	auto := s.autoProvision
	if raw := c.Query("auto"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parâmetro auto inválido"})
			return
		}
		auto = v
	}

	name, data, ok := s.readUpload(c)
	if !ok {
		return
	}

	result, err := s.pipeline.Preview(data, name)
	if err != nil {
		s.parseFailure(c, err)
		return
	}

	report := s.pipeline.Reconcile(c.Request.Context(), result, auto)
	c.JSON(http.StatusOK, gin.H{
		"log":    report.Lines(),
		"report": report,
	})
}

func (s *Server) handleSubmit(c *gin.Context) {
	name, data, ok := s.readUpload(c)
	if !ok {
		return
	}

	if err := s.pipeline.Submit(c.Request.Context(), name, data); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": procimport.SubmitFailureMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": procimport.SubmitSuccessMessage})
}

// readUpload reads the "arquivo" multipart file. It writes the error
// response itself and reports false when the upload is unusable.
func (s *Server) readUpload(c *gin.Context) (string, []byte, bool) {
	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Arquivo muito grande."})
		return "", nil, false
	}
	// Chunked uploads carry no length, so the cap is enforced while reading.
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Arquivo muito grande."})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Escolha um arquivo .xlsx"})
		}
		return "", nil, false
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	header, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Escolha um arquivo .xlsx"})
		return "", nil, false
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": procimport.UserMessage(procimport.ErrInvalidFormat),
			"kind":  "invalid_format",
		})
		return "", nil, false
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Escolha um arquivo .xlsx"})
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Escolha um arquivo .xlsx"})
		return "", nil, false
	}

	return filepath.Base(header.Filename), data, true
}

func (s *Server) parseFailure(c *gin.Context, err error) {
	var (
		missingErr *procimport.MissingSheetError
		emptyErr   *procimport.EmptySheetError
	)
	status, kind := http.StatusBadRequest, "parse_error"
	switch {
	case errors.As(err, &missingErr):
		status, kind = http.StatusUnprocessableEntity, "missing_sheet"
	case errors.As(err, &emptyErr):
		status, kind = http.StatusUnprocessableEntity, "empty_sheet"
	}

	c.JSON(status, gin.H{
		"error": procimport.UserMessage(err),
		"kind":  kind,
	})
}
