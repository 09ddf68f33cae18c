package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type candidate struct {
	Content      *content `json:"content"`
	FinishReason string   `json:"finishReason"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// RESTClient calls the generateContent endpoint directly, passing the API key
// as the "key" query parameter.
type RESTClient struct {
	http    *resty.Client
	baseURL string
	model   string
	apiKey  string
}

// RESTOption customizes a RESTClient.
type RESTOption func(*RESTClient)

// WithBaseURL points the client at a different host, e.g. a test server.
func WithBaseURL(baseURL string) RESTOption {
	return func(c *RESTClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRestyClient replaces the underlying resty client.
func WithRestyClient(rc *resty.Client) RESTOption {
	return func(c *RESTClient) {
		c.http = rc
	}
}

// NewRESTClient returns a client for model authenticated with apiKey.
func NewRESTClient(apiKey, model string, opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		http:    resty.NewWithClient(newHTTPClient()),
		baseURL: DefaultBaseURL,
		model:   model,
		apiKey:  apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RESTClient) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
}

// Generate sends prompt as the only content part.
func (c *RESTClient) Generate(ctx context.Context, prompt string) ([]Candidate, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(generateContentRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
		}).
		Post(c.endpoint())
	if err != nil {
		return nil, &TransportError{Err: err, secret: c.apiKey}
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{Code: resp.StatusCode(), Body: string(resp.Body())}
	}

	var out generateContentResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	candidates := make([]Candidate, 0, len(out.Candidates))
	for _, cand := range out.Candidates {
		var text string
		if cand.Content != nil && len(cand.Content.Parts) > 0 {
			text = cand.Content.Parts[0].Text
		}
		candidates = append(candidates, Candidate{Text: text, FinishReason: cand.FinishReason})
	}
	return candidates, nil
}
