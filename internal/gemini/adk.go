package gemini

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"google.golang.org/adk/model"
	adkgemini "google.golang.org/adk/model/gemini"
	"google.golang.org/genai"
)

// ModelClient calls Gemini through the ADK model abstraction. Responses are
// collected without streaming and folded into a single candidate.
type ModelClient struct {
	llm    model.LLM
	model  string
	apiKey string
}

// NewModelClient creates the ADK Gemini model for modelName.
func NewModelClient(ctx context.Context, apiKey, modelName, baseURL string) (*ModelClient, error) {
	llm, err := adkgemini.NewModel(ctx, modelName, clientConfig(apiKey, baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return &ModelClient{llm: llm, model: modelName, apiKey: apiKey}, nil
}

// Generate sends prompt as a single user turn.
func (c *ModelClient) Generate(ctx context.Context, prompt string) ([]Candidate, error) {
	req := &model.LLMRequest{
		Model: c.model,
		Contents: []*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		}},
		Config: &genai.GenerateContentConfig{},
	}
	candidates, err := collectCandidates(c.llm.GenerateContent(ctx, req, false))
	if err != nil {
		return nil, &TransportError{Err: err, secret: c.apiKey}
	}
	return candidates, nil
}

// adkEmptyResponse is the error text the ADK Gemini model returns when the
// reply holds no candidates.
const adkEmptyResponse = "empty response"

// collectCandidates concatenates the text of every response in seq. A reply
// without candidates produces none; a response without content produces one
// candidate with empty text.
func collectCandidates(seq iter.Seq2[*model.LLMResponse, error]) ([]Candidate, error) {
	var text strings.Builder
	var seen bool
	for response, err := range seq {
		if err != nil {
			if err.Error() == adkEmptyResponse {
				return []Candidate{}, nil
			}
			return nil, err
		}
		if response == nil {
			continue
		}
		seen = true
		if response.Content == nil {
			continue
		}
		for _, p := range response.Content.Parts {
			if p != nil && p.Text != "" {
				text.WriteString(p.Text)
			}
		}
	}
	if !seen {
		return nil, nil
	}
	return []Candidate{{Text: text.String()}}, nil
}
