// Package jsonl reads and writes one-JSON-object-per-line files, the
// batch input/output format. "-" means stdin or stdout.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"halluclean/internal/model"
)

// maxLineBytes bounds a single input line; long documents are expected
const maxLineBytes = 16 * 1024 * 1024

// Read loads all records from a JSONL file, or stdin when path is "-".
// Blank lines are skipped. A malformed line fails the whole read with
// its line number: bad input is rejected before any model call is made.
func Read(path string) ([]*model.Record, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	return readAll(r)
}

func readAll(r io.Reader) ([]*model.Record, error) {
	var records []*model.Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var fields map[string]any
		if err := json.Unmarshal([]byte(line), &fields); err != nil {
			return nil, fmt.Errorf("line %d: malformed JSON: %w", lineNo, err)
		}

		records = append(records, &model.Record{
			Index:  len(records),
			Fields: fields,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return records, nil
}
