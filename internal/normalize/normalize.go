// Package normalize reconciles legacy deployment field names with their
// canonical replacements.
package normalize

import "github.com/bianoble/fleetenv/internal/config"

// Alias maps a legacy field name onto its canonical replacement.
type Alias struct {
	Legacy    string
	Canonical string
	// Deprecated marks aliases whose use is reported as a validation warning.
	Deprecated bool
}

// aliases is consulted in order; when two legacy names share a canonical name
// the first one present wins.
var aliases = []Alias{
	{Legacy: "localDbUrl", Canonical: "localDatabaseUrl"},

	// Retired database vendor.
	{Legacy: "postgresHost", Canonical: "mariadbHost", Deprecated: true},
	{Legacy: "postgresPort", Canonical: "mariadbPort", Deprecated: true},
	{Legacy: "postgresUser", Canonical: "mariadbUser", Deprecated: true},
	{Legacy: "postgresPassword", Canonical: "mariadbPassword", Deprecated: true},
	{Legacy: "postgresDatabase", Canonical: "mariadbDatabase", Deprecated: true},

	{Legacy: "mariadbDb", Canonical: "mariadbDatabase", Deprecated: true},
	{Legacy: "corsOrigins", Canonical: "corsOrigin", Deprecated: true},
	{Legacy: "apiUrl", Canonical: "apiBaseUrl", Deprecated: true},
	{Legacy: "backendApiUrl", Canonical: "apiBaseUrl", Deprecated: true},
}

// Aliases returns a copy of the alias table in lookup order.
func Aliases() []Alias {
	out := make([]Alias, len(aliases))
	copy(out, aliases)
	return out
}

// Deprecated returns the deprecated aliases in table order.
func Deprecated() []Alias {
	var out []Alias
	for _, a := range aliases {
		if a.Deprecated {
			out = append(out, a)
		}
	}
	return out
}

// Normalize returns a copy of r in which every canonical field missing from r
// is filled from its legacy alias. Legacy fields are kept; canonical fields
// already present are never overwritten. The input is not modified.
func Normalize(r config.Record) config.Record {
	if r == nil {
		return nil
	}

	out := r.Clone()
	for _, a := range aliases {
		v, ok := out[a.Legacy]
		if !ok || out.Has(a.Canonical) {
			continue
		}
		out[a.Canonical] = v
	}
	return out
}
