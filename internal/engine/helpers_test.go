package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bianoble/fleetenv/internal/config"
)

func boolPtr(b bool) *bool { return &b }

func mustParse(t *testing.T, doc string) *config.Document {
	t.Helper()
	d, err := config.Parse([]byte(doc), config.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func num(s string) json.Number { return json.Number(s) }

func countSeverity(issues []Issue, sev Severity) int {
	n := 0
	for _, i := range issues {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

func containsIssue(issues []Issue, sev Severity, substr string) bool {
	for _, i := range issues {
		if i.Severity == sev && strings.Contains(i.String(), substr) {
			return true
		}
	}
	return false
}
