package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"halluclean/internal/model"
)

// Write emits records as one JSON object per line, to a file or stdout
// when path is "-". Records are written in slice order, which the worker
// pool keeps equal to input order.
func Write(path string, records []*model.Record) (err error) {
	var w io.Writer
	if path == "-" {
		w = os.Stdout
	} else {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output: %w", closeErr)
			}
		}()
		w = f
	}

	return writeAll(w, records)
}

func writeAll(w io.Writer, records []*model.Record) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)

	for _, rec := range records {
		if err := enc.Encode(rec.Output()); err != nil {
			return fmt.Errorf("record %d: encode: %w", rec.Index, err)
		}
	}

	return bw.Flush()
}
