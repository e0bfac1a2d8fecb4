// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	logpkg "github.com/ppiankov/lexscan/internal/logger"
	"github.com/ppiankov/lexscan/internal/metrics"
	"github.com/ppiankov/lexscan/internal/model"
	"github.com/ppiankov/lexscan/internal/pipeline"
	"github.com/ppiankov/lexscan/internal/segment"
	"github.com/ppiankov/lexscan/internal/textproc"
	"github.com/ppiankov/lexscan/internal/worker"
)

// Error codes returned in the "code" field of error responses
const (
	CodeBadRequest    = "bad_request"
	CodeInvalidConfig = "invalid_configuration"
	CodeEmptyDocument = "empty_document"
	CodeRateLimited   = "rate_limited"
	CodeInternalError = "internal_error"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler writes a response and returns true when it recognizes err
type errorHandler func(w http.ResponseWriter, err error) bool

// Server handles the lexscan HTTP API
type Server struct {
	pipeline      *pipeline.Pipeline
	config        model.ServerConfig
	limiter       *worker.Limiter // per client IP, nil disables
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// New creates an HTTP API server
func New(p *pipeline.Pipeline, cfg model.ServerConfig, limiter *worker.Limiter, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		pipeline: p,
		config:   cfg,
		limiter:  limiter,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		configErrorHandler,
		sentinelHandler(model.ErrDivideByZero, http.StatusUnprocessableEntity, CodeEmptyDocument),
	}
	return s
}

// Router builds the chi router with all middleware and routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/health", s.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(rateLimitMiddleware(s.limiter))
		r.Post("/chunks", s.Chunks)
		r.Post("/keywords", s.Keywords)
		r.Post("/summary", s.Summary)
		r.Post("/analyze", s.Analyze)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", s.config.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("Server stopped gracefully")
	return nil
}

// Health handles GET /health
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chunkParams struct {
	Method  string `json:"method,omitempty"`
	Size    *int   `json:"size,omitempty"`
	Overlap *int   `json:"overlap,omitempty"`
}

type keywordParams struct {
	MinFrequency *int `json:"min_frequency,omitempty"`
	MaxKeywords  *int `json:"max_keywords,omitempty"`
	MaxPhrases   *int `json:"max_phrases,omitempty"`
}

type summaryParams struct {
	Type   string `json:"type,omitempty"`
	Length string `json:"length,omitempty"`
}

// ChunkRequest is the body of POST /v1/chunks
type ChunkRequest struct {
	Text string `json:"text"`
	chunkParams
}

// ChunkResponse is returned by POST /v1/chunks
type ChunkResponse struct {
	Chunks      []model.Chunk `json:"chunks"`
	TotalChunks int           `json:"total_chunks"`
	TotalWords  int           `json:"total_words"`
}

// KeywordRequest is the body of POST /v1/keywords
type KeywordRequest struct {
	Text string `json:"text"`
	keywordParams
}

// SummaryRequest is the body of POST /v1/summary
type SummaryRequest struct {
	Text string `json:"text"`
	summaryParams
}

// AnalyzeRequest is the body of POST /v1/analyze
type AnalyzeRequest struct {
	Text     string        `json:"text"`
	Source   string        `json:"source,omitempty"`
	Chunking chunkParams   `json:"chunking"`
	Keywords keywordParams `json:"keywords"`
	Summary  summaryParams `json:"summary"`
}

// Chunks handles POST /v1/chunks
func (s *Server) Chunks(w http.ResponseWriter, r *http.Request) {
	var req ChunkRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.pipeline.Defaults().Chunking
	req.chunkParams.apply(&opts)

	chunks, err := s.pipeline.Chunk(req.Text, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	total := 0
	for _, c := range chunks {
		total += c.WordCount
	}
	writeJSON(w, http.StatusOK, ChunkResponse{Chunks: chunks, TotalChunks: len(chunks), TotalWords: total})
}

// Keywords handles POST /v1/keywords
func (s *Server) Keywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.pipeline.Defaults().Keywords
	req.keywordParams.apply(&opts)

	result, err := s.pipeline.ExtractAll(r.Context(), req.Text, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Summary handles POST /v1/summary
func (s *Server) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.pipeline.Defaults().Summary
	req.summaryParams.apply(&opts)

	result, err := s.pipeline.Summarize(r.Context(), req.Text, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Analyze handles POST /v1/analyze. Empty documents are rejected because
// they have no summary.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.pipeline.Defaults()
	opts.Source = req.Source
	req.Chunking.apply(&opts.Chunking)
	req.Keywords.apply(&opts.Keywords)
	req.Summary.apply(&opts.Summary)

	if err := opts.Validate(); err != nil {
		s.handleError(w, r, err)
		return
	}
	if textproc.CountWords(req.Text) == 0 {
		s.handleError(w, r, fmt.Errorf("analyze: %w", model.ErrDivideByZero))
		return
	}

	analysis, err := s.pipeline.Analyze(r.Context(), req.Text, opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (c chunkParams) apply(opts *segment.Options) {
	if c.Method != "" {
		opts.Method = model.ChunkMethod(c.Method)
	}
	if c.Size != nil {
		opts.Size = *c.Size
	}
	if c.Overlap != nil {
		opts.Overlap = *c.Overlap
	}
}

func (k keywordParams) apply(opts *pipeline.ExtractOptions) {
	if k.MinFrequency != nil {
		opts.MinFrequency = *k.MinFrequency
	}
	if k.MaxKeywords != nil {
		opts.MaxKeywords = *k.MaxKeywords
	}
	if k.MaxPhrases != nil {
		opts.MaxPhrases = *k.MaxPhrases
	}
}

func (p summaryParams) apply(opts *pipeline.SummaryOptions) {
	if p.Type != "" {
		opts.Type = model.SummaryType(p.Type)
	}
	if p.Length != "" {
		opts.Length = model.SummaryLength(p.Length)
	}
}

// decode reads a size-limited JSON body into v and writes a 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.config.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodeBadRequest,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// configErrorHandler exposes parameter problems to the client verbatim
func configErrorHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, model.ErrInvalidConfig) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeInvalidConfig, err.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// jsonRecoverer turns handler panics into a JSON 500
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits one log line per request and propagates X-Request-ID
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

// rateLimitMiddleware rejects clients that exceed their per-IP budget
func rateLimitMiddleware(limiter *worker.Limiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
