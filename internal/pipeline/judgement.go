package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// The judge stage is the single point where unstructured model text
// becomes a program-controlled boolean, so the rule set here is ordered
// and deterministic:
//
//  1. normalize (case-fold, strip surrounding punctuation/whitespace)
//  2. a leading "yes"/"no" token decides
//  3. otherwise the first standalone "yes"/"no" token decides
//  4. otherwise the judgement is ambiguous and an error is returned,
//     never a guessed default
var (
	leadingYes     = regexp.MustCompile(`^yes\b`)
	leadingNo      = regexp.MustCompile(`^no\b`)
	judgementToken = regexp.MustCompile(`\b(yes|no)\b`)
)

// ParseJudgement extracts the hallucination verdict from raw judge-stage
// text. Yes means hallucinated.
func ParseJudgement(raw string) (bool, error) {
	text := normalizeJudgement(raw)

	if leadingYes.MatchString(text) {
		return true, nil
	}
	if leadingNo.MatchString(text) {
		return false, nil
	}

	if token := judgementToken.FindString(text); token != "" {
		return token == "yes", nil
	}

	return false, &AmbiguousJudgementError{Raw: raw}
}

// normalizeJudgement case-folds and strips surrounding punctuation and
// whitespace
func normalizeJudgement(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "\"'`*.,;:!?()[]")
	return strings.TrimSpace(s)
}

// AmbiguousJudgementError reports judge-stage text carrying no
// affirmative or negative signal. The caller decides whether to fail the
// record or apply a configured, explicitly flagged fallback.
type AmbiguousJudgementError struct {
	Raw string
}

func (e *AmbiguousJudgementError) Error() string {
	return fmt.Sprintf("ambiguous judgement: no yes/no token in %q", truncate(e.Raw, 120))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
