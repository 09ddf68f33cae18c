package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// SDKClient calls Gemini through the Go GenAI SDK.
type SDKClient struct {
	client *genai.Client
	model  string
	apiKey string
}

// NewSDKClient creates a Gemini API client for model.
func NewSDKClient(ctx context.Context, apiKey, model, baseURL string) (*SDKClient, error) {
	client, err := genai.NewClient(ctx, clientConfig(apiKey, baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &SDKClient{client: client, model: model, apiKey: apiKey}, nil
}

func clientConfig(apiKey, baseURL string) *genai.ClientConfig {
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(),
	}
	if baseURL != "" && baseURL != DefaultBaseURL {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	return cfg
}

// Generate sends prompt as a single user turn.
func (c *SDKClient) Generate(ctx context.Context, prompt string) ([]Candidate, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, &TransportError{Err: err, secret: c.apiKey}
	}
	return candidatesFromSDK(resp), nil
}

func candidatesFromSDK(resp *genai.GenerateContentResponse) []Candidate {
	if resp == nil {
		return nil
	}
	candidates := make([]Candidate, 0, len(resp.Candidates))
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		var text string
		if cand.Content != nil && len(cand.Content.Parts) > 0 && cand.Content.Parts[0] != nil {
			text = cand.Content.Parts[0].Text
		}
		candidates = append(candidates, Candidate{Text: text, FinishReason: string(cand.FinishReason)})
	}
	return candidates
}
