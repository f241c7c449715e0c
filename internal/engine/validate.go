package engine

import (
	"fmt"
	"strings"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/normalize"
)

// Values of the databaseUsageMode deployment field.
const (
	DatabaseLocal  = "LOCAL"
	DatabaseShared = "SHARED"
	DatabaseNone   = "NONE"
)

// Validate checks a whole document. Every issue is collected; a structural
// problem skips only the subtree it affects.
func Validate(doc *config.Document) ValidationResult {
	var issues []Issue

	if doc.SchemaVersion == "" {
		issues = append(issues, newWarning("document", "", "'schemaVersion' is recommended"))
	}
	if doc.Environment == "" {
		issues = append(issues, newWarning("document", "", "'environment' is recommended"))
	}

	switch {
	case doc.Systems == nil:
		issues = append(issues, newError("document", "", "'systems' is required"))
	case len(doc.Systems) == 0:
		issues = append(issues, newError("document", "", "at least one system is required"))
	}

	systemIDs := make(map[string]bool)
	for i := range doc.Systems {
		sys := &doc.Systems[i]
		prefix := systemLocation(i, sys)

		if sys.ID == "" {
			issues = append(issues, newError(prefix, "", "'id' is required"))
		} else if systemIDs[sys.ID] {
			issues = append(issues, newError(prefix, "", fmt.Sprintf("duplicate system id '%s'", sys.ID)))
		} else {
			systemIDs[sys.ID] = true
		}
		if len(sys.Components) == 0 {
			issues = append(issues, newWarning(prefix, "", "system declares no components"))
		}

		componentIDs := make(map[string]bool)
		for j := range sys.Components {
			comp := &sys.Components[j]
			cprefix := indexedComponentLocation(prefix, j, comp)

			if comp.ID == "" {
				issues = append(issues, newError(cprefix, "", "'id' is required"))
			} else if componentIDs[comp.ID] {
				issues = append(issues, newError(cprefix, "", fmt.Sprintf("duplicate component id '%s' in system", comp.ID)))
			} else {
				componentIDs[comp.ID] = true
			}

			switch {
			case comp.Type == "":
				issues = append(issues, newError(cprefix, "", "'type' is required, must be one of: AGENT, WEB"))
			case !comp.Type.Valid():
				issues = append(issues, newError(cprefix, "", fmt.Sprintf("invalid type '%s', must be one of: AGENT, WEB", comp.Type)))
			}

			if comp.Deployment == nil {
				issues = append(issues, newError(cprefix, "", "'deployment' is required"))
				continue
			}
			issues = append(issues, componentRules(cprefix, comp)...)
		}
	}

	return ValidationResult{
		Valid:  !hasErrors(issues),
		Issues: issues,
	}
}

// ValidateComponent runs the per-component rules for comp, which belongs to sys.
// Document-level checks are not repeated.
func ValidateComponent(sys *config.System, comp *config.Component) []Issue {
	loc := componentLocation(sys, comp)
	if comp.Deployment == nil {
		return []Issue{newError(loc, "", "'deployment' is required")}
	}
	return componentRules(loc, comp)
}

func componentRules(loc string, comp *config.Component) []Issue {
	var issues []Issue

	// Deprecated names are reported from the record as written.
	for _, a := range normalize.Deprecated() {
		if comp.Deployment.Has(a.Legacy) {
			issues = append(issues, newWarning(loc, a.Legacy,
				fmt.Sprintf("'%s' is deprecated, use '%s' instead", a.Legacy, a.Canonical)))
		}
	}

	d, err := normalize.Normalize(comp.Deployment).Known()
	if err != nil {
		return append(issues, newError(loc, "", err.Error()))
	}

	switch comp.Type {
	case config.ComponentAgent:
		if !hasPort(d.Port) {
			issues = append(issues, newError(loc, "port", "AGENT component requires 'port'"))
		}
	case config.ComponentWeb:
		if !hasPort(d.Port) {
			issues = append(issues, newError(loc, "port", "WEB component requires 'port'"))
		}
		if d.APIBaseURL == "" {
			issues = append(issues, newWarning(loc, "apiBaseUrl", "WEB component should set 'apiBaseUrl' for its upstream API"))
		}
	}

	issues = append(issues, databaseModeRules(loc, d)...)
	issues = append(issues, mariadbRules(loc, d)...)
	return issues
}

func databaseModeRules(loc string, d config.Deployment) []Issue {
	const field = "databaseUsageMode"
	var issues []Issue

	switch d.DatabaseUsageMode {
	case "":
		// not declared
	case DatabaseLocal:
		if d.LocalDatabaseURL == "" {
			issues = append(issues, newError(loc, "localDatabaseUrl", "databaseUsageMode LOCAL requires 'localDatabaseUrl'"))
		}
	case DatabaseShared:
		if d.DatabaseDeploymentKey == "" && !hasDirectConnection(d) {
			issues = append(issues, newError(loc, field,
				"databaseUsageMode SHARED requires 'databaseDeploymentKey' or a direct connection ('mariadbHost', 'mariadbPort', 'mariadbUser', 'mariadbDatabase')"))
		}
	case DatabaseNone:
		if d.LocalDatabaseURL != "" {
			issues = append(issues, newWarning(loc, "localDatabaseUrl", "databaseUsageMode NONE but 'localDatabaseUrl' is set"))
		}
		if d.DatabaseDeploymentKey != "" {
			issues = append(issues, newWarning(loc, "databaseDeploymentKey", "databaseUsageMode NONE but 'databaseDeploymentKey' is set"))
		}
	default:
		issues = append(issues, newError(loc, field,
			fmt.Sprintf("invalid databaseUsageMode '%s', must be one of: LOCAL, SHARED, NONE", d.DatabaseUsageMode)))
	}
	return issues
}

// mariadbRules applies independently of databaseUsageMode, so a SHARED record
// with a partial connection can be reported by both rule sets.
func mariadbRules(loc string, d config.Deployment) []Issue {
	if d.MariaDBHost == "" && d.MariaDBPort == "" && d.MariaDBUser == "" {
		return nil
	}

	var issues []Issue
	required := []struct {
		field string
		value string
	}{
		{"mariadbHost", d.MariaDBHost},
		{"mariadbPort", d.MariaDBPort},
		{"mariadbUser", d.MariaDBUser},
		{"mariadbDatabase", d.MariaDBDatabase},
	}
	for _, r := range required {
		if r.value == "" {
			issues = append(issues, newError(loc, r.field,
				fmt.Sprintf("'%s' is required when a MariaDB connection is configured", r.field)))
		}
	}
	if d.MariaDBPassword == "" {
		issues = append(issues, newWarning(loc, "mariadbPassword", "'mariadbPassword' is not set; the MariaDB connection has no password"))
	}
	return issues
}

func hasDirectConnection(d config.Deployment) bool {
	return d.MariaDBHost != "" && d.MariaDBPort != "" && d.MariaDBUser != "" && d.MariaDBDatabase != ""
}

func hasPort(p string) bool {
	p = strings.TrimSpace(p)
	return p != "" && p != "0"
}

func hasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

func systemLocation(i int, sys *config.System) string {
	if sys.ID != "" {
		return fmt.Sprintf("system '%s'", sys.ID)
	}
	return fmt.Sprintf("system[%d]", i)
}

func componentLocation(sys *config.System, comp *config.Component) string {
	return fmt.Sprintf("system '%s' component '%s'", sys.ID, comp.ID)
}

func indexedComponentLocation(systemLoc string, j int, comp *config.Component) string {
	if comp.ID != "" {
		return fmt.Sprintf("%s component '%s'", systemLoc, comp.ID)
	}
	return fmt.Sprintf("%s component[%d]", systemLoc, j)
}

func newError(loc, field, msg string) Issue {
	return Issue{Severity: SeverityError, Location: loc, Field: field, Message: msg}
}

func newWarning(loc, field, msg string) Issue {
	return Issue{Severity: SeverityWarning, Location: loc, Field: field, Message: msg}
}
