package model

import "fmt"

// Mode selects which stages run for each record
type Mode string

const (
	ModeDetect   Mode = "detect"   // Plan → Reason → Judge only
	ModeRevise   Mode = "revise"   // Revision only, no analysis available
	ModePipeline Mode = "pipeline" // Detection, then revision when hallucinated
)

// ParseMode converts a user-supplied mode string into a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDetect, ModeRevise, ModePipeline:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode: %q (supported: detect, revise, pipeline)", s)
	}
}

// DetectionResult holds the output of the three detection stages.
// Analysis is the verbatim reason-stage text; revision correctness
// depends on it being complete, not summarized.
type DetectionResult struct {
	Plan           string `json:"plan"`
	Analysis       string `json:"analysis"`
	RawJudgement   string `json:"raw_judgement"`
	IsHallucinated bool   `json:"is_hallucinated"`
}

// RevisionResult holds the corrected answer produced by the revision stage
type RevisionResult struct {
	RevisedAnswer string `json:"revised_answer"`
}

// Record is one unit of batch work: the original input object plus
// whatever results or errors processing attached to it.
type Record struct {
	Index  int            // position in the input, preserved through output
	Fields map[string]any // original input object, never mutated

	Detection *DetectionResult
	Revision  *RevisionResult

	// Warning is set when a configured fallback fired (e.g. an ambiguous
	// judgement defaulted to not-hallucinated). Never set silently.
	Warning string

	ErrStage string // which stage failed, when Err is set
	Err      error
}

// Output merges the original input fields with the result fields for
// emission. The original object is copied, never mutated.
func (r *Record) Output() map[string]any {
	out := make(map[string]any, len(r.Fields)+6)
	for k, v := range r.Fields {
		out[k] = v
	}

	if r.Detection != nil {
		out["plan"] = r.Detection.Plan
		out["analysis"] = r.Detection.Analysis
		out["raw_judgement"] = r.Detection.RawJudgement
		out["is_hallucinated"] = r.Detection.IsHallucinated
	}
	if r.Revision != nil {
		out["revised_answer"] = r.Revision.RevisedAnswer
	}
	if r.Warning != "" {
		out["judgement_warning"] = r.Warning
	}
	if r.Err != nil {
		out["error"] = r.Err.Error()
		if r.ErrStage != "" {
			out["error_stage"] = r.ErrStage
		}
	}

	return out
}
