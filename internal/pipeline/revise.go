package pipeline

import (
	"context"

	"halluclean/internal/llm"
	"halluclean/internal/model"
	"halluclean/internal/task"
)

// Reviser produces a corrected answer for one request
type Reviser struct {
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
}

// NewReviser creates a reviser using the given provider and revise-stage
// model settings
func NewReviser(provider llm.Provider, modelID string, temperature float64, maxTokens int) *Reviser {
	return &Reviser{
		provider:    provider,
		model:       modelID,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Revise generates a corrected answer. When analysis is non-empty it is
// threaded into the prompt so the model corrects using the same
// reasoning that flagged the hallucination; when empty (standalone
// revise mode) the prompt degrades to correction-only framing.
func (r *Reviser) Revise(ctx context.Context, spec task.Spec, req task.Request, analysis string) (*model.RevisionResult, error) {
	resp, err := r.provider.Generate(ctx, llm.GenerateRequest{
		Model:       r.model,
		Prompt:      spec.RevisePrompt(req, analysis),
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
	})
	if err != nil {
		return nil, &StageError{Stage: StageRevise, Err: err}
	}

	return &model.RevisionResult{RevisedAnswer: resp.Text}, nil
}
