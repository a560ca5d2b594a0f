package pipeline

import (
	"context"
	"errors"

	"halluclean/internal/model"
	"halluclean/internal/task"
)

// AmbiguousPolicy names the configured reaction to an unparseable
// judgement
type AmbiguousPolicy string

const (
	// AmbiguousFail marks the record as errored (default)
	AmbiguousFail AmbiguousPolicy = "fail"

	// AmbiguousNotHallucinated treats the record as clean but attaches
	// an explicit warning so the fallback is never silent
	AmbiguousNotHallucinated AmbiguousPolicy = "not-hallucinated"
)

// ParseAmbiguousPolicy validates a user-supplied policy string
func ParseAmbiguousPolicy(s string) (AmbiguousPolicy, error) {
	switch AmbiguousPolicy(s) {
	case AmbiguousFail, AmbiguousNotHallucinated:
		return AmbiguousPolicy(s), nil
	default:
		return "", errors.New("unknown ambiguous-judgement policy: " + s + " (supported: fail, not-hallucinated)")
	}
}

const ambiguousWarning = "judge output carried no yes/no verdict; defaulted to not hallucinated by configured policy"

// Controller dispatches per-record processing according to the run mode.
// Each record's processing is independent; record-level failures are
// captured into the record, never escalated to the batch.
type Controller struct {
	spec      task.Spec
	mode      model.Mode
	detector  *Detector
	reviser   *Reviser
	ambiguous AmbiguousPolicy
}

// NewController creates a controller for one batch run
func NewController(spec task.Spec, mode model.Mode, detector *Detector, reviser *Reviser, ambiguous AmbiguousPolicy) *Controller {
	if ambiguous == "" {
		ambiguous = AmbiguousFail
	}
	return &Controller{
		spec:      spec,
		mode:      mode,
		detector:  detector,
		reviser:   reviser,
		ambiguous: ambiguous,
	}
}

// Validate builds the request for a record without running any stages.
// Used to reject malformed records before the batch starts.
func (c *Controller) Validate(rec *model.Record) (task.Request, error) {
	return task.NewRequest(c.spec.Task(), rec.Fields)
}

// Process runs the mode's stage sequence for one record, attaching the
// results or the error in place
func (c *Controller) Process(ctx context.Context, rec *model.Record) {
	req, err := c.Validate(rec)
	if err != nil {
		rec.Err = err
		rec.ErrStage = "input"
		return
	}

	switch c.mode {
	case model.ModeDetect:
		c.runDetect(ctx, rec, req)
	case model.ModeRevise:
		c.runRevise(ctx, rec, req)
	default:
		c.runPipeline(ctx, rec, req)
	}
}

// runDetect runs detection only
func (c *Controller) runDetect(ctx context.Context, rec *model.Record, req task.Request) {
	det, ok := c.detect(ctx, rec, req)
	if !ok {
		return
	}
	rec.Detection = det
}

// runRevise runs revision only; no analysis is available in this mode
func (c *Controller) runRevise(ctx context.Context, rec *model.Record, req task.Request) {
	rev, err := c.reviser.Revise(ctx, c.spec, req, "")
	if err != nil {
		c.fail(rec, err)
		return
	}
	rec.Revision = rev
}

// runPipeline runs detection, then revision when the verdict warrants
// it. The analysis handed to revision always comes from this record's
// own detection, never cached across records.
func (c *Controller) runPipeline(ctx context.Context, rec *model.Record, req task.Request) {
	det, ok := c.detect(ctx, rec, req)
	if !ok {
		return
	}
	rec.Detection = det

	if !det.IsHallucinated {
		// Clean verdict: the original answer stands
		rec.Revision = &model.RevisionResult{RevisedAnswer: req.Field(c.spec.AnswerField())}
		return
	}

	rev, err := c.reviser.Revise(ctx, c.spec, req, det.Analysis)
	if err != nil {
		c.fail(rec, err)
		return
	}
	rec.Revision = rev
}

// detect runs the detection stages and applies the ambiguous-judgement
// policy. Returns ok=false when the record failed.
func (c *Controller) detect(ctx context.Context, rec *model.Record, req task.Request) (*model.DetectionResult, bool) {
	det, err := c.detector.Detect(ctx, c.spec, req)
	if err == nil {
		return det, true
	}

	var ambiguous *AmbiguousJudgementError
	if errors.As(err, &ambiguous) && c.ambiguous == AmbiguousNotHallucinated {
		// det is populated up to the raw judgement; the fallback is
		// explicit, never silent
		det.IsHallucinated = false
		rec.Warning = ambiguousWarning
		return det, true
	}

	c.fail(rec, err)
	return nil, false
}

// fail records a stage failure on the record
func (c *Controller) fail(rec *model.Record, err error) {
	rec.Err = err
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		rec.ErrStage = stageErr.Stage
	}
}
