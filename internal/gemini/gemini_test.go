package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func TestRESTClient_Success(t *testing.T) {
	var gotKey, gotPath string
	var gotBody generateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Great day!"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := NewRESTClient("secret-key", "gemini-2.0-flash", WithBaseURL(srv.URL+"/"))
	candidates, err := c.Generate(context.Background(), "caption this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("expected key query param, got %q", gotKey)
	}
	if gotPath != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "caption this" {
		t.Errorf("unexpected request body %+v", gotBody)
	}
	if len(candidates) != 1 || candidates[0].Text != "Great day!" || candidates[0].FinishReason != "STOP" {
		t.Errorf("unexpected candidates %+v", candidates)
	}
}

func TestRESTClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	candidates, err := NewRESTClient("k", DefaultModel, WithBaseURL(srv.URL)).Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("expected no candidates, got %+v", candidates)
	}
}

func TestRESTClient_CandidateWithoutParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"finishReason":"SAFETY"}]}`))
	}))
	defer srv.Close()

	candidates, err := NewRESTClient("k", DefaultModel, WithBaseURL(srv.URL)).Generate(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Text != "" {
		t.Errorf("expected one empty candidate, got %+v", candidates)
	}
}

func TestRESTClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := NewRESTClient("k", DefaultModel, WithBaseURL(srv.URL)).Generate(context.Background(), "p")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", statusErr.Code)
	}
	if !strings.Contains(statusErr.Body, "API key not valid") {
		t.Errorf("expected upstream body to be kept, got %q", statusErr.Body)
	}
}

func TestRESTClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewRESTClient("k", DefaultModel, WithBaseURL(srv.URL)).Generate(context.Background(), "p")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestRESTClient_TransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewRESTClient("super-secret", DefaultModel, WithBaseURL(url)).Generate(context.Background(), "p")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if strings.Contains(err.Error(), "super-secret") {
		t.Errorf("error message leaks the API key: %s", err)
	}
}

func TestCandidatesFromSDK(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "first"}, {Text: "ignored"}}}, FinishReason: genai.FinishReasonStop},
			{Content: nil},
		},
	}
	got := candidatesFromSDK(resp)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Text != "first" || got[0].FinishReason != "STOP" {
		t.Errorf("unexpected first candidate %+v", got[0])
	}
	if got[1].Text != "" {
		t.Errorf("expected empty text for candidate without content, got %q", got[1].Text)
	}
	if candidatesFromSDK(nil) != nil {
		t.Error("expected nil for nil response")
	}
}

func TestCollectCandidates(t *testing.T) {
	seq := func(yield func(*model.LLMResponse, error) bool) {
		for _, text := range []string{"Great ", "day!"} {
			resp := &model.LLMResponse{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}}
			if !yield(resp, nil) {
				return
			}
		}
	}
	got, err := collectCandidates(seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Great day!" {
		t.Errorf("unexpected candidates %+v", got)
	}
}

func TestCollectCandidates_NoContent(t *testing.T) {
	seq := func(yield func(*model.LLMResponse, error) bool) {
		yield(&model.LLMResponse{}, nil)
	}
	got, err := collectCandidates(seq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Text != "" {
		t.Errorf("expected one empty candidate, got %+v", got)
	}
}

func TestCollectCandidates_EmptyResponse(t *testing.T) {
	seq := func(yield func(*model.LLMResponse, error) bool) {
		yield(nil, errors.New("empty response"))
	}
	got, err := collectCandidates(seq)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected an empty candidate list, got %+v", got)
	}
}

func TestCollectCandidates_NothingYielded(t *testing.T) {
	seq := func(yield func(*model.LLMResponse, error) bool) {}
	got, err := collectCandidates(seq)
	if err != nil || len(got) != 0 {
		t.Errorf("expected no candidates and no error, got %+v, %v", got, err)
	}
}

func TestCollectCandidates_Error(t *testing.T) {
	boom := errors.New("boom")
	seq := func(yield func(*model.LLMResponse, error) bool) {
		yield(nil, boom)
	}
	if _, err := collectCandidates(seq); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New(context.Background(), Options{Backend: "carrier-pigeon", APIKey: "k"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestNew_DefaultsToREST(t *testing.T) {
	g, err := New(context.Background(), Options{APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := g.(*RESTClient)
	if !ok {
		t.Fatalf("expected *RESTClient, got %T", g)
	}
	if c.model != DefaultModel || c.baseURL != DefaultBaseURL {
		t.Errorf("unexpected defaults: model=%q baseURL=%q", c.model, c.baseURL)
	}
}
