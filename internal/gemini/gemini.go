// Package gemini wraps the Gemini generateContent call behind a single
// interface so the caption service does not depend on a transport.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by New.
const (
	BackendREST  = "rest"
	BackendGenAI = "genai"
	BackendADK   = "adk"
)

const (
	DefaultModel   = "gemini-2.0-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

// ErrMalformedResponse is returned when a 2xx upstream body cannot be decoded.
var ErrMalformedResponse = errors.New("malformed generateContent response")

// Candidate is one generated alternative. Text holds the first text part.
type Candidate struct {
	Text         string
	FinishReason string
}

// Generator performs one generateContent round trip for prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]Candidate, error)
}

// StatusError is a non-2xx upstream reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini returned status %d", e.Code)
}

// TransportError wraps a failure to complete the round trip. Its message has
// the API key removed because request URLs carry it as a query parameter.
type TransportError struct {
	Err    error
	secret string
}

func (e *TransportError) Error() string {
	msg := e.Err.Error()
	if e.secret != "" {
		msg = strings.ReplaceAll(msg, e.secret, "REDACTED")
	}
	return "gemini request failed: " + msg
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Options configures New.
type Options struct {
	Backend string
	APIKey  string
	Model   string
	BaseURL string
}

// New builds the Generator selected by opts.Backend.
func New(ctx context.Context, opts Options) (Generator, error) {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	switch opts.Backend {
	case "", BackendREST:
		return NewRESTClient(opts.APIKey, opts.Model, WithBaseURL(opts.BaseURL)), nil
	case BackendGenAI:
		return NewSDKClient(ctx, opts.APIKey, opts.Model, opts.BaseURL)
	case BackendADK:
		return NewModelClient(ctx, opts.APIKey, opts.Model, opts.BaseURL)
	default:
		return nil, fmt.Errorf("unknown gemini backend %q", opts.Backend)
	}
}
