// Package summarize turns an item into a bounded summary payload via the LLM.
// Unlike text extraction, this capability is required: any failure here
// propagates and aborts the whole run rather than producing a digest with
// silently missing enrichment.
package summarize

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"agentdigest/internal/core"
	"agentdigest/internal/llm"
	"agentdigest/internal/textutil"
)

// MaxActions caps the follow-up list in every payload.
const MaxActions = 3

const (
	titleLimit = 220
	textLimit  = 12000
)

// Request carries everything the summarizer may use for one item.
type Request struct {
	Title     string
	URL       string
	Kind      core.Kind
	Published string
	Text      string // extracted article text, may be empty
}

// Summarizer is the summarization capability. Implementations must return a
// bounded payload or an error; there is no local fallback summary.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (core.SummaryPayload, error)
}

const promptTemplate = `Summarize the item below for a weekly technical digest about agent marketplaces, ERC-8004, reputation scoring, secure agent execution, and trading/data agents.

Write in crisp bullet-friendly English. Avoid fluff. If the extracted text is empty or too short, summarize from title + URL context only.

Item:
Title: %s
URL: %s
Kind: %s
Published: %s

Extracted text (may be empty):
%s`

// payloadSchema is the response schema enforced on the model output.
func payloadSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "2-3 sentences max",
			},
			"why_it_matters": {
				Type:        genai.TypeString,
				Description: "1-2 sentences",
			},
			"actions": {
				Type:        genai.TypeArray,
				Description: "0-3 concrete follow-ups, short imperative verbs",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"summary", "why_it_matters"},
	}
}

// BuildPrompt renders the summarization prompt for a request. Title and text
// are clamped so oversized articles cannot blow the context window.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(promptTemplate,
		textutil.Clamp(textutil.CollapseWhitespace(req.Title), titleLimit),
		req.URL,
		req.Kind,
		req.Published,
		textutil.Clamp(textutil.CollapseWhitespace(req.Text), textLimit),
	)
}

// ParsePayload decodes and normalizes the model's JSON output. A payload that
// does not parse as the expected structure is an error.
func ParsePayload(raw string) (core.SummaryPayload, error) {
	var payload core.SummaryPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return core.SummaryPayload{}, fmt.Errorf("summarizer returned malformed payload: %w", err)
	}

	payload.Summary = textutil.CollapseWhitespace(payload.Summary)
	payload.WhyItMatters = textutil.CollapseWhitespace(payload.WhyItMatters)

	actions := payload.Actions
	if len(actions) > MaxActions {
		actions = actions[:MaxActions]
	}
	cleaned := make([]string, 0, len(actions))
	for _, action := range actions {
		if a := textutil.CollapseWhitespace(action); a != "" {
			cleaned = append(cleaned, a)
		}
	}
	payload.Actions = cleaned

	return payload, nil
}

// GeminiSummarizer implements Summarizer on top of the Gemini client.
type GeminiSummarizer struct {
	client *llm.Client
}

// NewGeminiSummarizer wraps an LLM client as the summarization capability.
func NewGeminiSummarizer(client *llm.Client) *GeminiSummarizer {
	return &GeminiSummarizer{client: client}
}

// Summarize generates the structured payload for one item.
func (s *GeminiSummarizer) Summarize(ctx context.Context, req Request) (core.SummaryPayload, error) {
	raw, err := s.client.GenerateJSON(ctx, BuildPrompt(req), payloadSchema())
	if err != nil {
		return core.SummaryPayload{}, fmt.Errorf("summarization failed for %s: %w", req.URL, err)
	}
	return ParsePayload(raw)
}
