package engine

import (
	"sort"

	"github.com/bianoble/fleetenv/internal/config"
)

// Severity grades a validation issue or discovery note.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Location string // "system 'sys-a' component 'comp-a'", "document", ...
	Field    string // deployment field concerned, if any
	Message  string
}

func (i Issue) String() string {
	if i.Location == "" {
		return i.Message
	}
	return i.Location + ": " + i.Message
}

// ValidationResult holds the outcome of a validate operation.
type ValidationResult struct {
	Valid  bool
	Issues []Issue
}

// Errors returns the error-severity issues.
func (r ValidationResult) Errors() []Issue {
	return filterIssues(r.Issues, SeverityError)
}

// Warnings returns the warning-severity issues.
func (r ValidationResult) Warnings() []Issue {
	return filterIssues(r.Issues, SeverityWarning)
}

// Outcome records which discovery strategy selected a component.
type Outcome string

const (
	OutcomeExplicit       Outcome = "explicit"
	OutcomeComponentID    Outcome = "component-id"
	OutcomeAutoDiscovered Outcome = "auto-discovered"
	OutcomeFallback       Outcome = "fallback"
)

// Note is an informational or warning-grade message produced by discovery.
type Note struct {
	Severity Severity
	Message  string
}

// Selection is the component chosen by Discover, with its owning system.
type Selection struct {
	System    *config.System
	Component *config.Component
	Outcome   Outcome
}

// ExtractedConfig holds the outcome of an extract operation.
type ExtractedConfig struct {
	SystemID      string
	SystemType    string
	ComponentID   string
	ComponentType config.ComponentType
	Outcome       Outcome

	Vars   map[string]string
	Issues []Issue
	Notes  []Note
}

// Keys returns the variable names in lexicographic order.
func (e *ExtractedConfig) Keys() []string {
	keys := make([]string, 0, len(e.Vars))
	for k := range e.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Valid reports whether no error-severity issue was found for the component.
func (e *ExtractedConfig) Valid() bool {
	return len(e.Errors()) == 0
}

// Errors returns the error-severity issues.
func (e *ExtractedConfig) Errors() []Issue {
	return filterIssues(e.Issues, SeverityError)
}

// Warnings returns the warning-severity issues.
func (e *ExtractedConfig) Warnings() []Issue {
	return filterIssues(e.Issues, SeverityWarning)
}

func filterIssues(issues []Issue, sev Severity) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == sev {
			out = append(out, i)
		}
	}
	return out
}
