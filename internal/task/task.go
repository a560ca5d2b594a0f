// Package task encapsulates everything that varies by task family:
// which input fields a record must carry and how the four stage prompts
// are phrased. All five tasks share the identical four-prompt shape,
// which is what keeps the detection pipeline task-agnostic.
package task

import (
	"fmt"
	"sort"
	"strings"
)

// Task is the closed set of supported task families
type Task string

const (
	QA  Task = "qa"  // question answering
	SUM Task = "sum" // summarization
	DA  Task = "da"  // dialogue
	TSC Task = "tsc" // self-contradiction
	MWP Task = "mwp" // math word problems
)

// Parse converts a user-supplied task string into a Task
func Parse(s string) (Task, error) {
	t := Task(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := specs[t]; !ok {
		return "", fmt.Errorf("unknown task: %q (supported: %s)", s, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names lists the supported task names, sorted
func Names() []string {
	names := make([]string, 0, len(specs))
	for t := range specs {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

// Spec builds the four stage prompts for one task family. Builders are
// pure: identical inputs always produce identical prompts.
type Spec interface {
	Task() Task

	// RequiredFields names the canonical input fields a request must carry
	RequiredFields() []string

	// AnswerField names the field holding the candidate answer, i.e. the
	// text under scrutiny. Used as the revised-answer fallback when no
	// revision runs.
	AnswerField() string

	PlanPrompt(req Request) string
	ReasonPrompt(req Request, plan string) string
	JudgePrompt(req Request, plan, analysis string) string
	RevisePrompt(req Request, analysis string) string
}

// specs is the static task → specification mapping. Dispatch happens
// here once per record, not via string branching inside the pipeline.
var specs = map[Task]Spec{
	QA:  qaSpec{},
	SUM: sumSpec{},
	DA:  daSpec{},
	TSC: tscSpec{},
	MWP: mwpSpec{},
}

// SpecFor returns the specification for a task
func SpecFor(t Task) (Spec, error) {
	spec, ok := specs[t]
	if !ok {
		return nil, fmt.Errorf("unknown task: %q", t)
	}
	return spec, nil
}

// aliases maps each canonical field to the accepted input spellings, in
// lookup order. The canonical name itself is always tried first.
var aliases = map[string][]string{
	"question":    {"q"},
	"answer":      {"a", "response"},
	"source_text": {"source", "document"},
	"context":     {"history"},
	"response":    {"answer"},
	"text":        {"content"},
	"problem":     {"question"},
	"solution":    {"answer"},
}

// Request is the immutable per-record input to the prompt builders.
// Construction validates required fields up front, so the builders
// themselves never fail.
type Request struct {
	task   Task
	fields map[string]string
}

// NewRequest builds a Request for one task from an input record's fields.
// A missing or empty required field is a configuration error, not a
// runtime fallback.
func NewRequest(t Task, record map[string]any) (Request, error) {
	spec, err := SpecFor(t)
	if err != nil {
		return Request{}, err
	}

	fields := make(map[string]string, len(spec.RequiredFields()))
	for _, name := range spec.RequiredFields() {
		val, ok := lookupField(record, name)
		if !ok || strings.TrimSpace(val) == "" {
			return Request{}, &MissingFieldError{Task: t, Field: name}
		}
		fields[name] = val
	}

	return Request{task: t, fields: fields}, nil
}

// lookupField resolves a canonical field name against a record, trying
// the accepted aliases in order.
func lookupField(record map[string]any, name string) (string, bool) {
	candidates := append([]string{name}, aliases[name]...)
	for _, key := range candidates {
		if raw, ok := record[key]; ok {
			if s, ok := raw.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Task returns the task this request was built for
func (r Request) Task() Task {
	return r.task
}

// Field returns a validated field value
func (r Request) Field(name string) string {
	return r.fields[name]
}

// MissingFieldError reports a required input field absent from a record
type MissingFieldError struct {
	Task  Task
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("task %s: required field %q missing or empty", e.Task, e.Field)
}
