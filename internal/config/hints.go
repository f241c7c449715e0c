package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// Environment variables consulted for selector hints. The primary name wins over
// the TARGET_-prefixed alternate.
const (
	EnvComponentID       = "COMPONENT_ID"
	EnvTargetComponentID = "TARGET_COMPONENT_ID"
	EnvSystemID          = "SYSTEM_ID"
	EnvTargetSystemID    = "TARGET_SYSTEM_ID"
)

// Hints narrows component discovery. Empty fields are unset.
type Hints struct {
	SystemID    string
	ComponentID string
}

// IsZero reports whether no hint is set.
func (h Hints) IsZero() bool {
	return h.SystemID == "" && h.ComponentID == ""
}

type envHints struct {
	ComponentID       string `env:"COMPONENT_ID"`
	TargetComponentID string `env:"TARGET_COMPONENT_ID"`
	SystemID          string `env:"SYSTEM_ID"`
	TargetSystemID    string `env:"TARGET_SYSTEM_ID"`
}

// HintsFromEnv reads selector hints from the process environment.
func HintsFromEnv() (Hints, error) {
	var e envHints
	if err := env.Parse(&e); err != nil {
		return Hints{}, fmt.Errorf("reading selector hints from environment: %w", err)
	}

	h := Hints{
		SystemID:    strings.TrimSpace(e.SystemID),
		ComponentID: strings.TrimSpace(e.ComponentID),
	}
	alternate := Hints{
		SystemID:    strings.TrimSpace(e.TargetSystemID),
		ComponentID: strings.TrimSpace(e.TargetComponentID),
	}
	if err := mergo.Merge(&h, alternate); err != nil {
		return Hints{}, fmt.Errorf("merging alternate selector hints: %w", err)
	}
	return h, nil
}

// ResolveHints layers explicit hints over those found in the environment.
// Each explicit, non-empty field wins; unset fields fall back to the environment.
func ResolveHints(explicit Hints) (Hints, error) {
	fromEnv, err := HintsFromEnv()
	if err != nil {
		return Hints{}, err
	}

	resolved := Hints{
		SystemID:    strings.TrimSpace(explicit.SystemID),
		ComponentID: strings.TrimSpace(explicit.ComponentID),
	}
	if err := mergo.Merge(&resolved, fromEnv); err != nil {
		return Hints{}, fmt.Errorf("merging selector hints: %w", err)
	}
	return resolved, nil
}
