package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
)

const wantCompA = `# Generated by fleetenv
# Component: comp-a
# System: sys-a
# Generated at: 2026-05-01T00:00:00Z
COMPONENT_ID=comp-a
COMPONENT_TYPE=AGENT
DATABASE_URL=mysql://db
DATABASE_USAGE_MODE=LOCAL
ENVIRONMENT=test
FLEET_ENVIRONMENT=test
LOCAL_DATABASE_URL=mysql://db
PORT=4001
SYSTEM_ID=sys-a
SYSTEM_TYPE=IAM
`

func TestExtractToStdout(t *testing.T) {
	out, errOut := setupCommand(t)
	path := writeDocument(t, "fleet.json", testDocument)

	if err := extractCmd.RunE(extractCmd, []string{path, "comp-a"}); err != nil {
		t.Fatalf("extract: %v", err)
	}

	if out.String() != wantCompA {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", out.String(), wantCompA)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no diagnostics, got %q", errOut.String())
	}
}

func TestExtractToFile(t *testing.T) {
	out, _ := setupCommand(t)
	path := writeDocument(t, "fleet.json", testDocument)
	extractOutput = filepath.Join(t.TempDir(), ".env")
	selectSystem, selectComponent = "sys-a", "comp-a"

	if err := extractCmd.RunE(extractCmd, []string{path}); err != nil {
		t.Fatalf("extract: %v", err)
	}

	data, err := os.ReadFile(extractOutput)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != wantCompA {
		t.Errorf("file content mismatch:\n%s", data)
	}
	if !strings.Contains(out.String(), "Wrote 10 variables for sys-a/comp-a") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestExtractErrorsWriteNothing(t *testing.T) {
	out, errOut := setupCommand(t)
	path := writeDocument(t, "fleet.json", testDocument)

	err := extractCmd.RunE(extractCmd, []string{path, "bad"})
	if err == nil {
		t.Fatal("expected error for component with validation errors")
	}
	if !strings.Contains(err.Error(), "no output written") {
		t.Errorf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
	for _, want := range []string{
		"error: system 'sys-a' component 'bad': AGENT component requires 'port'",
		"error: system 'sys-a' component 'bad': databaseUsageMode LOCAL requires 'localDatabaseUrl'",
	} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut.String())
		}
	}
}

func TestExtractAutoDiscoveryNote(t *testing.T) {
	out, errOut := setupCommand(t)
	path := writeDocument(t, "fleet.json", testDocument)

	if err := extractCmd.RunE(extractCmd, []string{path}); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out.String() != wantCompA {
		t.Errorf("auto-discovery should select comp-a:\n%s", out.String())
	}
	if !strings.HasPrefix(errOut.String(), "info: auto-discovered component 'comp-a'") {
		t.Errorf("expected discovery note, got %q", errOut.String())
	}
}

func TestExtractEnvironmentSelection(t *testing.T) {
	out, _ := setupCommand(t)
	t.Setenv("TARGET_COMPONENT_ID", "web-a")
	path := writeDocument(t, "fleet.json", testDocument)

	if err := extractCmd.RunE(extractCmd, []string{path}); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out.String(), "COMPONENT_ID=web-a\n") {
		t.Errorf("expected web-a selection:\n%s", out.String())
	}
}

func TestExtractValidateOnly(t *testing.T) {
	out, _ := setupCommand(t)
	path := writeDocument(t, "fleet.json", testDocument)
	extractValidateOnly = true

	err := extractCmd.RunE(extractCmd, []string{path, "bad"})
	if err == nil {
		t.Fatal("expected error")
	}
	report := out.String()
	for _, want := range []string{"Component 'bad' (AGENT) in system 'sys-a'", "Errors (2):", "INVALID (2 errors, 0 warnings)"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
	if strings.Contains(report, "PORT=") {
		t.Error("validate-only must not print variables")
	}
}

func TestExtractFatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    func(path string) []string
		want    error
	}{
		{"missing file", "", func(p string) []string { return []string{p + ".missing"} }, config.ErrDocumentNotFound},
		{"malformed", "{not json", func(p string) []string { return []string{p} }, config.ErrMalformedDocument},
		{"no systems", `{"systems": []}`, func(p string) []string { return []string{p} }, engine.ErrNoSystems},
		{"unknown component", testDocument, func(p string) []string { return []string{p, "nope"} }, engine.ErrComponentNotFound},
		{"missing deployment", `{"systems": [{"id": "s", "components": [{"id": "c", "type": "AGENT"}]}]}`,
			func(p string) []string { return []string{p} }, engine.ErrMissingDeployment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := setupCommand(t)
			path := writeDocument(t, "fleet.json", tt.content)

			err := extractCmd.RunE(extractCmd, tt.args(path))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if out.Len() != 0 {
				t.Errorf("expected no output, got %q", out.String())
			}
		})
	}
}
