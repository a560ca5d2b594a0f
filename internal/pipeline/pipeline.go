// Package pipeline sequences the Plan, Reason, Judge and Revise stages
// into detection verdicts and corrected answers. Context is carried
// forward explicitly: every stage prompt embeds the previous stage's
// output, so stages within one record are strictly sequential.
package pipeline

import (
	"context"
	"fmt"

	"halluclean/internal/llm"
	"halluclean/internal/model"
	"halluclean/internal/task"
)

// Stage names used in error reporting and output records
const (
	StagePlan   = "plan"
	StageReason = "reason"
	StageJudge  = "judge"
	StageRevise = "revise"
)

// StageError reports which stage failed and why
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Detector runs the three detection stages for one request
type Detector struct {
	provider    llm.Provider
	model       string
	temperature float64
	maxTokens   int
}

// NewDetector creates a detector using the given provider and
// detect-stage model settings
func NewDetector(provider llm.Provider, modelID string, temperature float64, maxTokens int) *Detector {
	return &Detector{
		provider:    provider,
		model:       modelID,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Detect runs Plan → Reason → Judge in strict sequence. A stage failure
// aborts with a StageError and no result. An unparseable judgement
// returns the populated result alongside an AmbiguousJudgementError so
// the caller can apply its fallback policy without losing the
// transcript.
func (d *Detector) Detect(ctx context.Context, spec task.Spec, req task.Request) (*model.DetectionResult, error) {
	plan, err := d.generate(ctx, StagePlan, spec.PlanPrompt(req), d.temperature)
	if err != nil {
		return nil, err
	}

	analysis, err := d.generate(ctx, StageReason, spec.ReasonPrompt(req, plan), d.temperature)
	if err != nil {
		return nil, err
	}

	// Judge runs at temperature 0 to maximize parse reliability
	rawJudgement, err := d.generate(ctx, StageJudge, spec.JudgePrompt(req, plan, analysis), 0)
	if err != nil {
		return nil, err
	}

	result := &model.DetectionResult{
		Plan:         plan,
		Analysis:     analysis,
		RawJudgement: rawJudgement,
	}

	isHallucinated, err := ParseJudgement(rawJudgement)
	if err != nil {
		return result, &StageError{Stage: StageJudge, Err: err}
	}
	result.IsHallucinated = isHallucinated

	return result, nil
}

func (d *Detector) generate(ctx context.Context, stage, prompt string, temperature float64) (string, error) {
	resp, err := d.provider.Generate(ctx, llm.GenerateRequest{
		Model:       d.model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   d.maxTokens,
	})
	if err != nil {
		return "", &StageError{Stage: stage, Err: err}
	}
	return resp.Text, nil
}
