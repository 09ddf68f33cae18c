package gemini

import (
	"log/slog"
	"net/http"
)

// LoggingTransport logs each upstream round trip at debug level. The query
// string is left out because it carries the API key.
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		slog.Debug("Gemini request failed", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path)
		return nil, err
	}
	slog.Debug("Gemini request", "method", req.Method, "host", req.URL.Host, "path", req.URL.Path, "status", resp.StatusCode)
	return resp, nil
}

// newHTTPClient keeps the default client timeouts; only the transport changes.
func newHTTPClient() *http.Client {
	return &http.Client{Transport: &LoggingTransport{Base: http.DefaultTransport}}
}
