package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/gemini"
	"github.com/vitormoschetta/captionai/internal/logger"
	"github.com/vitormoschetta/captionai/internal/metrics"
	"github.com/vitormoschetta/captionai/internal/model"
)

// CaptionService turns a validated caption request into one Gemini call.
type CaptionService struct {
	generator gemini.Generator
	backend   string
	logger    *slog.Logger
}

// Option configures a CaptionService.
type Option func(*CaptionService)

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *CaptionService) {
		s.logger = l
	}
}

// WithBackend sets the backend label reported in metrics.
func WithBackend(name string) Option {
	return func(s *CaptionService) {
		s.backend = name
	}
}

// NewCaptionService returns a service backed by generator. A nil generator
// means no API key was configured and every request is rejected.
func NewCaptionService(generator gemini.Generator, opts ...Option) *CaptionService {
	s := &CaptionService{
		generator: generator,
		backend:   gemini.BackendREST,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}
	return s
}

// Configured reports whether the service holds an upstream credential.
func (s *CaptionService) Configured() bool {
	return s.generator != nil
}

// Generate returns the caption for req or an *apperr.Error describing the
// client-facing failure.
func (s *CaptionService) Generate(ctx context.Context, req model.CaptionRequest) (string, error) {
	caption, err := s.generate(ctx, req)
	status := "ok"
	if err != nil {
		status = "error"
		if appErr, ok := apperr.As(err); ok && appErr.Status < 500 {
			status = "invalid"
		}
	}
	responseType, captionLength := metricLabels(req)
	metrics.CaptionsTotal.WithLabelValues(responseType, captionLength, status).Inc()
	return caption, err
}

// metricLabels keeps the caption counter's label set bounded: values outside
// the allowed enums are reported as "invalid".
func metricLabels(req model.CaptionRequest) (string, string) {
	responseType, captionLength := "invalid", "invalid"
	if req.ResponseType.Valid() {
		responseType = string(req.ResponseType)
	}
	if req.CaptionLength.Valid() {
		captionLength = string(req.CaptionLength)
	}
	return responseType, captionLength
}

func (s *CaptionService) generate(ctx context.Context, req model.CaptionRequest) (string, error) {
	log := logger.With(ctx, s.logger)

	if err := req.Validate(); err != nil {
		return "", err
	}
	if s.generator == nil {
		log.Error("caption request rejected: missing API key")
		return "", apperr.Internal(model.MsgConfiguration, errors.New("GOOGLE_API_KEY not set"))
	}

	start := time.Now()
	candidates, err := s.generator.Generate(ctx, model.BuildPrompt(req))
	metrics.UpstreamCallDuration.WithLabelValues(s.backend).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamCallTotal.WithLabelValues(s.backend, "error").Inc()
		if errors.Is(err, gemini.ErrMalformedResponse) {
			log.Error("API returned unexpected response format", "error", err)
			return "", apperr.Internal(model.MsgInvalidUpstream, err)
		}
		attrs := []any{"error", err, "backend", s.backend}
		var statusErr *gemini.StatusError
		if errors.As(err, &statusErr) {
			attrs = append(attrs, "status", statusErr.Code, "body", statusErr.Body)
		}
		log.Error("API request failed", attrs...)
		return "", apperr.Internal(model.MsgGenerationFailed, err)
	}
	metrics.UpstreamCallTotal.WithLabelValues(s.backend, "ok").Inc()

	if len(candidates) == 0 {
		log.Error("API returned unexpected response format", "candidates", 0)
		return "", apperr.Internal(model.MsgInvalidUpstream, errors.New("no candidates"))
	}
	caption := candidates[0].Text
	if caption == "" {
		log.Warn("generated caption was empty", "finish_reason", candidates[0].FinishReason)
		return "", apperr.Internal(model.MsgEmptyCaption, errors.New("empty candidate text"))
	}
	return caption, nil
}
