package config

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecordKnown(t *testing.T) {
	r := Record{
		"port":              json.Number("4001"),
		"databaseUsageMode": "SHARED",
		"mariadbHost":       "db.internal",
		"mariadbPort":       json.Number("3306"),
		"mariadbPassword":   nil,
		"customFlag":        true,
	}

	d, err := r.Known()
	if err != nil {
		t.Fatalf("Known: %v", err)
	}
	if d.Port != "4001" {
		t.Errorf("Port = %q, want 4001", d.Port)
	}
	if d.DatabaseUsageMode != "SHARED" {
		t.Errorf("DatabaseUsageMode = %q, want SHARED", d.DatabaseUsageMode)
	}
	if d.MariaDBPort != "3306" {
		t.Errorf("MariaDBPort = %q, want 3306", d.MariaDBPort)
	}
	if d.MariaDBPassword != "" {
		t.Errorf("null password should decode as empty, got %q", d.MariaDBPassword)
	}
	if d.Extra["customFlag"] != true {
		t.Errorf("unknown field should land in Extra, got %#v", d.Extra)
	}
}

func TestRecordKnownRejectsObjectForScalar(t *testing.T) {
	r := Record{"port": map[string]any{"http": "80"}}
	if _, err := r.Known(); err == nil {
		t.Fatal("expected error decoding an object into port")
	}
}

func TestRecordCloneIsIndependent(t *testing.T) {
	r := Record{"a": "1"}
	c := r.Clone()
	c["b"] = "2"
	if r.Has("b") {
		t.Error("mutating the clone should not affect the original")
	}
	if !reflect.DeepEqual(c.Keys(), []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want [a b]", c.Keys())
	}
}

func TestComponentTypeValid(t *testing.T) {
	tests := []struct {
		typ  ComponentType
		want bool
	}{
		{ComponentAgent, true},
		{ComponentWeb, true},
		{"agent", false},
		{"", false},
		{"WORKER", false},
	}
	for _, tt := range tests {
		if got := tt.typ.Valid(); got != tt.want {
			t.Errorf("ComponentType(%q).Valid() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestComponentIsEnabled(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name    string
		enabled *bool
		want    bool
	}{
		{"absent", nil, true},
		{"true", &yes, true},
		{"false", &no, false},
	}
	for _, tt := range tests {
		c := Component{Enabled: tt.enabled}
		if got := c.IsEnabled(); got != tt.want {
			t.Errorf("%s: IsEnabled() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
