package task

import (
	"errors"
	"strings"
	"testing"
)

// sampleFields returns a valid input record for each task
func sampleFields(t Task) map[string]any {
	switch t {
	case QA:
		return map[string]any{"question": "Who wrote Hamlet?", "answer": "Christopher Marlowe wrote Hamlet."}
	case SUM:
		return map[string]any{"source_text": "The plant opened in 1970 and employs 300 people.", "summary": "The plant opened in 1985."}
	case DA:
		return map[string]any{"context": "A: Where are you from?\nB: I grew up in Lyon.", "response": "B said they grew up in Madrid."}
	case TSC:
		return map[string]any{"text": "The bridge is the oldest in the city. It was built last year."}
	case MWP:
		return map[string]any{"problem": "Tom has 3 apples and buys 4 more. How many does he have?", "solution": "Tom has 12 apples."}
	default:
		return nil
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"qa", "sum", "da", "tsc", "mwp"} {
		if _, err := Parse(name); err != nil {
			t.Errorf("Parse(%q) failed: %v", name, err)
		}
	}

	// Case and whitespace are tolerated
	if tk, err := Parse("  QA "); err != nil || tk != QA {
		t.Errorf("Parse(\"  QA \") = %v, %v", tk, err)
	}

	if _, err := Parse("translation"); err == nil {
		t.Error("expected error for unknown task")
	}
}

func TestSpecPromptsNonEmptyAndDeterministic(t *testing.T) {
	for _, name := range Names() {
		tk, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		spec, err := SpecFor(tk)
		if err != nil {
			t.Fatalf("SpecFor(%q): %v", name, err)
		}

		req, err := NewRequest(tk, sampleFields(tk))
		if err != nil {
			t.Fatalf("NewRequest(%q): %v", name, err)
		}

		prompts := map[string][2]string{
			"plan":   {spec.PlanPrompt(req), spec.PlanPrompt(req)},
			"reason": {spec.ReasonPrompt(req, "check each fact"), spec.ReasonPrompt(req, "check each fact")},
			"judge":  {spec.JudgePrompt(req, "check each fact", "the date is wrong"), spec.JudgePrompt(req, "check each fact", "the date is wrong")},
			"revise": {spec.RevisePrompt(req, "the date is wrong"), spec.RevisePrompt(req, "the date is wrong")},
		}

		for stage, pair := range prompts {
			if strings.TrimSpace(pair[0]) == "" {
				t.Errorf("%s: %s prompt is empty", name, stage)
			}
			if pair[0] != pair[1] {
				t.Errorf("%s: %s prompt is not deterministic", name, stage)
			}
		}

		// Every required field must be embedded in the plan prompt
		for _, field := range spec.RequiredFields() {
			if !strings.Contains(prompts["plan"][0], req.Field(field)) {
				t.Errorf("%s: plan prompt does not embed field %q", name, field)
			}
		}
	}
}

func TestReasonPromptEmbedsPlan(t *testing.T) {
	for _, name := range Names() {
		tk, _ := Parse(name)
		spec, _ := SpecFor(tk)
		req, err := NewRequest(tk, sampleFields(tk))
		if err != nil {
			t.Fatalf("NewRequest(%q): %v", name, err)
		}

		plan := "first verify names, then verify dates"
		if !strings.Contains(spec.ReasonPrompt(req, plan), plan) {
			t.Errorf("%s: reason prompt does not embed the plan", name)
		}

		analysis := "the response invents a city never mentioned"
		if !strings.Contains(spec.JudgePrompt(req, plan, analysis), analysis) {
			t.Errorf("%s: judge prompt does not embed the analysis", name)
		}
		if !strings.Contains(spec.RevisePrompt(req, analysis), analysis) {
			t.Errorf("%s: revise prompt does not embed the analysis", name)
		}
	}
}

func TestNewRequestMissingField(t *testing.T) {
	_, err := NewRequest(QA, map[string]any{"question": "Who wrote Hamlet?"})
	if err == nil {
		t.Fatal("expected error for missing answer field")
	}
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %T", err)
	}
	if missing.Field != "answer" {
		t.Errorf("expected missing field %q, got %q", "answer", missing.Field)
	}

	// Present but empty counts as missing
	_, err = NewRequest(QA, map[string]any{"question": "Who wrote Hamlet?", "answer": "  "})
	if err == nil {
		t.Error("expected error for empty answer field")
	}
}

func TestNewRequestAliases(t *testing.T) {
	tests := []struct {
		task   Task
		fields map[string]any
		field  string
		want   string
	}{
		{QA, map[string]any{"q": "who?", "a": "them"}, "question", "who?"},
		{QA, map[string]any{"question": "who?", "response": "them"}, "answer", "them"},
		{SUM, map[string]any{"document": "full text", "summary": "short"}, "source_text", "full text"},
		{SUM, map[string]any{"source": "full text", "summary": "short"}, "source_text", "full text"},
		{DA, map[string]any{"history": "hi there", "answer": "hello"}, "context", "hi there"},
		{TSC, map[string]any{"content": "some claims"}, "text", "some claims"},
		{MWP, map[string]any{"question": "3+4?", "answer": "7"}, "problem", "3+4?"},
	}

	for _, tt := range tests {
		req, err := NewRequest(tt.task, tt.fields)
		if err != nil {
			t.Errorf("%s: NewRequest failed: %v", tt.task, err)
			continue
		}
		if got := req.Field(tt.field); got != tt.want {
			t.Errorf("%s: field %q = %q, want %q", tt.task, tt.field, got, tt.want)
		}
	}
}

func TestCanonicalFieldWinsOverAlias(t *testing.T) {
	req, err := NewRequest(QA, map[string]any{"question": "canonical", "q": "alias", "answer": "x"})
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	if req.Field("question") != "canonical" {
		t.Errorf("expected canonical field to win, got %q", req.Field("question"))
	}
}
