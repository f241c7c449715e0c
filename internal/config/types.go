package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// ComponentType tags a component as a background agent or a web frontend.
type ComponentType string

const (
	ComponentAgent ComponentType = "AGENT"
	ComponentWeb   ComponentType = "WEB"
)

// Valid reports whether t is one of the known component types.
func (t ComponentType) Valid() bool {
	return t == ComponentAgent || t == ComponentWeb
}

// Document represents a parsed fleet configuration document.
type Document struct {
	SchemaVersion string      `mapstructure:"schemaVersion" json:"schemaVersion,omitempty"`
	Environment   string      `mapstructure:"environment" json:"environment,omitempty"`
	Version       json.Number `mapstructure:"version" json:"version,omitempty"`
	Systems       []System    `mapstructure:"systems" json:"systems"`
}

// HasVersion reports whether the document declares a numeric version.
func (d *Document) HasVersion() bool {
	return d.Version != ""
}

// System groups the components deployed together under one identifier.
type System struct {
	ID         string      `mapstructure:"id" json:"id"`
	Type       string      `mapstructure:"type" json:"type"`
	Components []Component `mapstructure:"components" json:"components"`
}

// Component is a single deployable unit of a system.
type Component struct {
	ID         string        `mapstructure:"id" json:"id"`
	Type       ComponentType `mapstructure:"type" json:"type"`
	Enabled    *bool         `mapstructure:"enabled" json:"enabled,omitempty"`
	URL        string        `mapstructure:"url" json:"url,omitempty"`
	Deployment Record        `mapstructure:"deployment" json:"deployment"`
}

// IsEnabled reports whether the component is enabled. Absent means enabled.
func (c *Component) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Record is the open-ended deployment field bag of a component.
// Values are strings, json.Number, booleans, nested maps or slices.
type Record map[string]any

// Has reports whether key is defined in the record.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record's field names in lexicographic order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Deployment is the typed view of the deployment fields the validator knows about.
// Scalars are decoded as strings; an empty string means the field is absent.
type Deployment struct {
	Port                  string `mapstructure:"port"`
	DatabaseUsageMode     string `mapstructure:"databaseUsageMode"`
	LocalDatabaseURL      string `mapstructure:"localDatabaseUrl"`
	DatabaseDeploymentKey string `mapstructure:"databaseDeploymentKey"`
	MariaDBHost           string `mapstructure:"mariadbHost"`
	MariaDBPort           string `mapstructure:"mariadbPort"`
	MariaDBUser           string `mapstructure:"mariadbUser"`
	MariaDBPassword       string `mapstructure:"mariadbPassword"`
	MariaDBDatabase       string `mapstructure:"mariadbDatabase"`
	APIBaseURL            string `mapstructure:"apiBaseUrl"`

	// Extra holds every field not listed above.
	Extra map[string]any `mapstructure:",remain"`
}

// Known decodes the record into its typed view.
func (r Record) Known() (Deployment, error) {
	var d Deployment
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &d,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Deployment{}, fmt.Errorf("creating deployment decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(r)); err != nil {
		return Deployment{}, fmt.Errorf("decoding deployment fields: %w", err)
	}
	return d, nil
}
