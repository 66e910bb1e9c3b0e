// Package enhance rewrites resume prose with an LLM: a single description in,
// a tightened professional version out.
package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/prompts"
)

// MaxDescriptionLength bounds the input so a pasted novel does not reach the
// model.
const MaxDescriptionLength = 1000

// Service wraps the LLM client for text enhancement.
type Service struct {
	client llm.Client
}

// New creates an enhancement service over the given LLM client.
func New(client llm.Client) *Service {
	return &Service{client: client}
}

// Enhance rewrites a description. The input text is returned untouched in the
// error cases so callers can keep what the user typed.
func (s *Service) Enhance(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("description is required")
	}
	if len(description) > MaxDescriptionLength {
		return "", fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}

	prompt := prompts.Format(
		prompts.MustGet("enhance.json", "enhance-description"),
		map[string]string{"Description": description},
	)

	enhanced, err := s.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to enhance description: %w", err)
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return "", fmt.Errorf("model returned empty enhancement")
	}
	return enhanced, nil
}
