package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vitormoschetta/captionai/internal/apperr"
	"github.com/vitormoschetta/captionai/internal/gemini"
	"github.com/vitormoschetta/captionai/internal/metrics"
	"github.com/vitormoschetta/captionai/internal/model"
)

// fakeGenerator implements gemini.Generator for testing.
type fakeGenerator struct {
	candidates []gemini.Candidate
	err        error
	calls      int
	prompt     string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) ([]gemini.Candidate, error) {
	f.calls++
	f.prompt = prompt
	return f.candidates, f.err
}

func validRequest() model.CaptionRequest {
	return model.CaptionRequest{Prompt: "sunset over the lake", ResponseType: model.ResponseInspirational, CaptionLength: model.LengthShort}
}

func newTestService(gen gemini.Generator) (*CaptionService, *bytes.Buffer) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	if gen == nil {
		return NewCaptionService(nil, WithLogger(l)), &buf
	}
	return NewCaptionService(gen, WithLogger(l), WithBackend("fake")), &buf
}

func assertAppErr(t *testing.T, err error, status int, message string) {
	t.Helper()
	appErr, ok := apperr.As(err)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Status != status || appErr.Message != message {
		t.Errorf("expected %d %q, got %d %q", status, message, appErr.Status, appErr.Message)
	}
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{candidates: []gemini.Candidate{{Text: "Great day!"}}}
	svc, _ := newTestService(gen)

	caption, err := svc.Generate(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if caption != "Great day!" {
		t.Errorf("expected 'Great day!', got %q", caption)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one upstream call, got %d", gen.calls)
	}
	if !strings.Contains(gen.prompt, `"sunset over the lake"`) || !strings.Contains(gen.prompt, "15-25 words") {
		t.Errorf("prompt not built from request: %s", gen.prompt)
	}
}

func TestGenerate_InvalidRequestSkipsUpstream(t *testing.T) {
	gen := &fakeGenerator{candidates: []gemini.Candidate{{Text: "x"}}}
	svc, _ := newTestService(gen)

	req := validRequest()
	req.CaptionLength = "epic"
	_, err := svc.Generate(context.Background(), req)
	assertAppErr(t, err, http.StatusBadRequest, model.MsgInvalidLength)
	if gen.calls != 0 {
		t.Errorf("expected no upstream call, got %d", gen.calls)
	}
}

func TestGenerate_MissingCredential(t *testing.T) {
	svc, logs := newTestService(nil)
	if svc.Configured() {
		t.Fatal("service without generator should not be configured")
	}

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgConfiguration)
	if !strings.Contains(logs.String(), "missing API key") {
		t.Errorf("expected configuration failure to be logged, got %q", logs.String())
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	svc, _ := newTestService(&fakeGenerator{candidates: []gemini.Candidate{}})

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgInvalidUpstream)
}

func TestGenerate_MalformedResponse(t *testing.T) {
	svc, _ := newTestService(&fakeGenerator{err: gemini.ErrMalformedResponse})

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgInvalidUpstream)
}

func TestGenerate_EmptyCaption(t *testing.T) {
	svc, _ := newTestService(&fakeGenerator{candidates: []gemini.Candidate{{Text: "", FinishReason: "SAFETY"}}})

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgEmptyCaption)
}

func TestGenerate_TransportFailureIsLoggedNotLeaked(t *testing.T) {
	cause := &gemini.TransportError{Err: errors.New("dial tcp: connection refused")}
	svc, logs := newTestService(&fakeGenerator{err: cause})

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgGenerationFailed)

	appErr, _ := apperr.As(err)
	if strings.Contains(appErr.Message, "connection refused") {
		t.Error("client message must not contain the underlying cause")
	}
	if !errors.Is(err, cause) {
		t.Error("cause should stay reachable for logging")
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Errorf("expected cause in logs, got %q", logs.String())
	}
}

func TestGenerate_StatusErrorLogsUpstreamDetail(t *testing.T) {
	svc, logs := newTestService(&fakeGenerator{err: &gemini.StatusError{Code: 429, Body: "quota exceeded"}})

	_, err := svc.Generate(context.Background(), validRequest())
	assertAppErr(t, err, http.StatusInternalServerError, model.MsgGenerationFailed)
	out := logs.String()
	if !strings.Contains(out, "status=429") || !strings.Contains(out, "quota exceeded") {
		t.Errorf("expected upstream status and body in logs, got %q", out)
	}
}

func TestGenerate_UnknownEnumsShareOneSeries(t *testing.T) {
	svc, _ := newTestService(nil)
	before := testutil.CollectAndCount(metrics.CaptionsTotal)

	for i := 0; i < 200; i++ {
		req := model.CaptionRequest{
			Prompt:        "x",
			ResponseType:  model.ResponseType(fmt.Sprintf("tone-%d", i)),
			CaptionLength: model.CaptionLength(fmt.Sprintf("len-%d", i)),
		}
		if _, err := svc.Generate(context.Background(), req); err == nil {
			t.Fatal("expected validation error")
		}
	}

	if after := testutil.CollectAndCount(metrics.CaptionsTotal); after > before+1 {
		t.Errorf("expected at most one new series, got %d -> %d", before, after)
	}
	if got := testutil.ToFloat64(metrics.CaptionsTotal.WithLabelValues("invalid", "invalid", "invalid")); got < 200 {
		t.Errorf("expected invalid requests counted under the invalid labels, got %v", got)
	}
}
