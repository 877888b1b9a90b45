// Package describe turns an analysis report into a human-readable
// narrative using a Gemini model. It is presentation glue over the
// report views and never feeds anything back into the analysis.
package describe

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"asmlens/internal/report"
)

// GeminiSummarizer narrates reports using Gemini text generation.
type GeminiSummarizer struct {
	client        *genai.Client
	model         string
	promptBuilder *PromptBuilder
}

func NewGeminiSummarizer(ctx context.Context, apiKey string, modelName string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiSummarizer{
		client:        client,
		model:         modelName,
		promptBuilder: &PromptBuilder{},
	}, nil
}

// DescribeAssembly produces a markdown narrative of the analyzed binary:
// what it is, which forms it has, and which external systems it talks to.
func (s *GeminiSummarizer) DescribeAssembly(ctx context.Context, r *report.AssemblyReport) (string, error) {
	prompt := s.promptBuilder.BuildAssemblyPrompt(report.BuildSummary(r), report.BuildExternal(r))
	return s.generate(ctx, prompt)
}

func (s *GeminiSummarizer) generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt)
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response from model %s", s.model)
	}
	return text, nil
}
