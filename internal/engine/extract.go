package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/normalize"
)

// Metadata variables added to every extraction.
const (
	VarSystemID         = "SYSTEM_ID"
	VarSystemType       = "SYSTEM_TYPE"
	VarComponentID      = "COMPONENT_ID"
	VarComponentType    = "COMPONENT_TYPE"
	VarConfigVersion    = "CONFIG_VERSION"
	VarEnvironment      = "FLEET_ENVIRONMENT"
	VarPlainEnvironment = "ENVIRONMENT"
)

// groupPrefix and groupSuffixes name the variables expanded from grouped URL
// tables: moduleUrls.iam becomes VITE_IAM_URL.
const groupPrefix = "VITE_"

var groupSuffixes = map[string]string{
	"moduleUrls":    "_URL",
	"moduleApiUrls": "_API_URL",
}

// CompatAlias duplicates a variable under the name older tooling reads.
type CompatAlias struct {
	New string
	Old string
}

var compatAliases = []CompatAlias{
	{New: "LOCAL_DATABASE_URL", Old: "DATABASE_URL"},
	{New: "DATABASE_DEPLOYMENT_KEY", Old: "DB_DEPLOYMENT_KEY"},
	{New: "GIT_REPOSITORY", Old: "GITHUB_REPOSITORY"},
	{New: "GIT_BRANCH", Old: "GITHUB_BRANCH"},
	{New: "GIT_COMMIT", Old: "GITHUB_SHA"},
	{New: "OIDC_REDIRECT_URI", Old: "OIDC_REDIRECT_URL"},
}

// CompatAliases returns a copy of the backward-compatibility variable table.
func CompatAliases() []CompatAlias {
	out := make([]CompatAlias, len(compatAliases))
	copy(out, compatAliases)
	return out
}

// Extract selects a component of doc and flattens its normalized deployment
// record into environment variables. Component rule findings are returned in
// the result rather than as an error.
//
// Fields are flattened in lexicographic order. When two fields yield the same
// variable name the later one wins and a warning names both.
func Extract(doc *config.Document, h config.Hints) (*ExtractedConfig, error) {
	sel, err := Discover(doc, h)
	if err != nil {
		return nil, err
	}

	sys, comp := sel.System, sel.Component
	if comp.Deployment == nil {
		return nil, fmt.Errorf("%w: component '%s' in system '%s'", ErrMissingDeployment, comp.ID, sys.ID)
	}

	result := &ExtractedConfig{
		SystemID:      sys.ID,
		SystemType:    sys.Type,
		ComponentID:   comp.ID,
		ComponentType: comp.Type,
		Outcome:       sel.Outcome,
		Issues:        ValidateComponent(sys, comp),
	}
	if note, ok := sel.Note(); ok {
		result.Notes = append(result.Notes, note)
	}

	f := &flattener{
		loc:     componentLocation(sys, comp),
		vars:    make(map[string]string),
		sources: make(map[string]string),
	}
	record := normalize.Normalize(comp.Deployment)
	for _, field := range record.Keys() {
		f.addField(field, record[field])
	}
	result.Issues = append(result.Issues, f.issues...)
	vars := f.vars

	vars[VarSystemID] = sys.ID
	vars[VarSystemType] = sys.Type
	vars[VarComponentID] = comp.ID
	vars[VarComponentType] = string(comp.Type)
	if doc.HasVersion() {
		vars[VarConfigVersion] = doc.Version.String()
	}
	if doc.Environment != "" {
		vars[VarEnvironment] = doc.Environment
		vars[VarPlainEnvironment] = doc.Environment
	}

	for _, a := range compatAliases {
		v, ok := vars[a.New]
		if !ok {
			continue
		}
		if _, exists := vars[a.Old]; !exists {
			vars[a.Old] = v
		}
	}

	result.Vars = vars
	return result, nil
}

// flattener accumulates variables and remembers which field produced each.
type flattener struct {
	loc     string
	vars    map[string]string
	sources map[string]string
	issues  []Issue
}

func (f *flattener) addField(field string, value any) {
	if value == nil {
		return
	}

	if suffix, ok := groupSuffixes[field]; ok {
		if group, ok := value.(map[string]any); ok {
			keys := make([]string, 0, len(group))
			for k := range group {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if group[k] == nil {
					continue
				}
				f.set(groupPrefix+EnvName(k)+suffix, field+"."+k, Stringify(group[k]))
			}
			return
		}
	}

	f.set(EnvName(field), field, Stringify(value))
}

func (f *flattener) set(name, source, value string) {
	if prev, ok := f.sources[name]; ok {
		f.issues = append(f.issues, newWarning(f.loc, source,
			fmt.Sprintf("'%s' and '%s' both map to %s; using '%s'", prev, source, name, source)))
	}
	f.vars[name] = value
	f.sources[name] = source
}

// Stringify renders a deployment value as an environment variable value.
// Booleans become "true"/"false", numbers and strings are kept verbatim and
// objects or arrays are encoded as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
