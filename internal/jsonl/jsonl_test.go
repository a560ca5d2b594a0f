package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"halluclean/internal/model"
)

func TestReadAll(t *testing.T) {
	input := `{"question": "Who wrote Hamlet?", "answer": "Shakespeare"}

{"question": "Capital of France?", "answer": "Lyon"}
`
	records, err := readAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("readAll failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (blank line skipped)", len(records))
	}
	for i, rec := range records {
		if rec.Index != i {
			t.Errorf("record %d has Index %d", i, rec.Index)
		}
	}
	if records[0].Fields["question"] != "Who wrote Hamlet?" {
		t.Errorf("unexpected fields: %v", records[0].Fields)
	}
	if records[1].Fields["answer"] != "Lyon" {
		t.Errorf("unexpected fields: %v", records[1].Fields)
	}
}

func TestReadAllMalformedLine(t *testing.T) {
	input := `{"question": "ok"}
{not json}
{"question": "never reached"}
`
	_, err := readAll(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed line")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the offending line, got: %v", err)
	}
}

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.jsonl")
	content := `{"source_text": "The cat sat.", "summary": "A dog stood."}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	records, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Fields["summary"] != "A dog stood." {
		t.Errorf("unexpected fields: %v", records[0].Fields)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got: %v", err)
	}
}

func TestWriteAllPreservesOrderAndFields(t *testing.T) {
	records := []*model.Record{
		{
			Index:  0,
			Fields: map[string]any{"question": "Q1", "answer": "A1"},
			Detection: &model.DetectionResult{
				Plan:           "plan text",
				Analysis:       "analysis text",
				RawJudgement:   "No",
				IsHallucinated: false,
			},
			Revision: &model.RevisionResult{RevisedAnswer: "A1"},
		},
		{
			Index:    1,
			Fields:   map[string]any{"question": "Q2"},
			ErrStage: "judge",
			Err:      errors.New("ambiguous judgement"),
		},
	}

	var buf bytes.Buffer
	if err := writeAll(&buf, records); err != nil {
		t.Fatalf("writeAll failed: %v", err)
	}

	var lines []map[string]any
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("output line is not valid JSON: %v", err)
		}
		lines = append(lines, obj)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d output lines, want 2", len(lines))
	}

	if lines[0]["question"] != "Q1" {
		t.Errorf("original fields should pass through: %v", lines[0])
	}
	if lines[0]["is_hallucinated"] != false {
		t.Errorf("detection result missing: %v", lines[0])
	}
	if lines[0]["revised_answer"] != "A1" {
		t.Errorf("revision result missing: %v", lines[0])
	}

	if lines[1]["question"] != "Q2" {
		t.Errorf("failed record should still carry its input: %v", lines[1])
	}
	if lines[1]["error"] != "ambiguous judgement" || lines[1]["error_stage"] != "judge" {
		t.Errorf("failure keys missing: %v", lines[1])
	}
	if _, ok := lines[1]["is_hallucinated"]; ok {
		t.Errorf("failed record should not claim a verdict: %v", lines[1])
	}
}

func TestWriteDoesNotEscapeHTML(t *testing.T) {
	records := []*model.Record{
		{Index: 0, Fields: map[string]any{"answer": "a < b && c > d"}},
	}

	var buf bytes.Buffer
	if err := writeAll(&buf, records); err != nil {
		t.Fatalf("writeAll failed: %v", err)
	}
	if strings.Contains(buf.String(), `<`) {
		t.Errorf("HTML escaping should be off: %s", buf.String())
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.jsonl")
	outPath := filepath.Join(dir, "out.jsonl")

	content := `{"problem": "2+2", "solution": "5"}
{"problem": "3*3", "solution": "9"}
`
	if err := os.WriteFile(inPath, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	records, err := Read(inPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if err := Write(outPath, records); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	again, err := Read(outPath)
	if err != nil {
		t.Fatalf("re-Read failed: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("got %d records after round trip, want 2", len(again))
	}
	if again[0].Fields["problem"] != "2+2" || again[1].Fields["solution"] != "9" {
		t.Errorf("fields lost in round trip: %v / %v", again[0].Fields, again[1].Fields)
	}
}
