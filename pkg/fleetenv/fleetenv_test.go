package fleetenv

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const testDoc = `{
  "schemaVersion": "1.0",
  "environment": "production",
  "systems": [
    {
      "id": "sys-a",
      "type": "IAM",
      "components": [
        {"id": "web-a", "type": "WEB", "deployment": {"port": 8080, "apiBaseUrl": "https://api"}},
        {"id": "comp-a", "type": "AGENT", "deployment": {"port": 4001, "databaseUsageMode": "LOCAL", "localDatabaseUrl": "mysql://db"}},
        {"id": "broken", "type": "AGENT", "deployment": {"databaseUsageMode": "LOCAL"}}
      ]
    }
  ]
}`

// writeDoc writes testDoc and returns its path.
func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fleet.json")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	return New(Options{
		IgnoreEnv: true,
		Now:       func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
}

func TestClientLoadAndValidate(t *testing.T) {
	client := newTestClient(t)

	doc, err := client.Load(writeDoc(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	result := client.Validate(doc)
	if result.Valid {
		t.Error("expected invalid document because of the broken component")
	}
	if len(result.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %v", result.Errors())
	}
}

func TestClientLoadMissing(t *testing.T) {
	_, err := newTestClient(t).Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestClientExtractAndRender(t *testing.T) {
	client := newTestClient(t)
	doc, err := client.Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := client.Extract(doc, Hints{ComponentID: "comp-a"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	out := string(client.Render(cfg))
	for _, want := range []string{
		"# Generated by fleetenv\n",
		"# Component: comp-a\n",
		"# System: sys-a\n",
		"# Generated at: 2026-01-02T03:04:05Z\n",
		"DATABASE_URL=mysql://db\n",
		"PORT=4001\n",
		"FLEET_ENVIRONMENT=production\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q:\n%s", want, out)
		}
	}
}

func TestClientExtractValidationError(t *testing.T) {
	client := newTestClient(t)
	doc, err := client.Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := client.Extract(doc, Hints{SystemID: "sys-a", ComponentID: "broken"})
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if cfg == nil {
		t.Fatal("result should be returned alongside the validation error")
	}
	var ve *ValidationError
	errors.As(err, &ve)
	if len(ve.Issues) != 2 {
		t.Errorf("expected 2 issues (port and local URL), got %v", ve.Issues)
	}
	if !strings.Contains(err.Error(), "2 validation error(s)") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestClientExtractUsesEnvironmentHints(t *testing.T) {
	t.Setenv("COMPONENT_ID", "web-a")
	t.Setenv("TARGET_COMPONENT_ID", "")
	t.Setenv("SYSTEM_ID", "")
	t.Setenv("TARGET_SYSTEM_ID", "")

	client := New(Options{})
	doc, err := client.Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := client.Extract(doc, Hints{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cfg.ComponentID != "web-a" {
		t.Errorf("ComponentID = %q, want web-a", cfg.ComponentID)
	}

	// Explicit hints win over the environment.
	cfg, err = client.Extract(doc, Hints{ComponentID: "comp-a"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if cfg.ComponentID != "comp-a" {
		t.Errorf("ComponentID = %q, want comp-a", cfg.ComponentID)
	}
}

func TestClientValidateComponent(t *testing.T) {
	client := newTestClient(t)
	doc, err := client.Load(writeDoc(t))
	if err != nil {
		t.Fatal(err)
	}

	sel, issues, err := client.ValidateComponent(doc, Hints{})
	if err != nil {
		t.Fatalf("ValidateComponent: %v", err)
	}
	if sel.Component.ID != "comp-a" {
		t.Errorf("selected %q, want the first enabled agent comp-a", sel.Component.ID)
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}

	if _, _, err := client.ValidateComponent(doc, Hints{SystemID: "nope"}); !errors.Is(err, ErrSystemNotFound) {
		t.Errorf("expected ErrSystemNotFound, got %v", err)
	}
}

func TestClientLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	client := New(Options{
		Logger:    zerolog.New(&buf).Level(zerolog.DebugLevel),
		IgnoreEnv: true,
	})

	if _, err := client.Load(writeDoc(t)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "document loaded") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}
