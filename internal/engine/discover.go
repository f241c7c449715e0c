package engine

import (
	"fmt"

	"github.com/bianoble/fleetenv/internal/config"
)

// strategy selects a component from doc. It returns (nil, nil) when it does not
// apply or finds no candidate, and an error when the hints cannot be resolved.
type strategy func(doc *config.Document, h config.Hints) (*Selection, error)

// strategies are tried in order until one yields a selection.
var strategies = []strategy{
	byExplicitPair,
	byComponentID,
	firstEnabledAgent,
	firstComponent,
}

// Discover selects exactly one component of doc using the given hints.
func Discover(doc *config.Document, h config.Hints) (*Selection, error) {
	if len(doc.Systems) == 0 {
		return nil, ErrNoSystems
	}

	for _, s := range strategies {
		sel, err := s(doc, h)
		if err != nil {
			return nil, err
		}
		if sel != nil {
			return sel, nil
		}
	}
	return nil, fmt.Errorf("%w: no system declares any components", ErrComponentNotFound)
}

// Note describes how the selection was made when discovery had to guess.
func (s *Selection) Note() (Note, bool) {
	switch s.Outcome {
	case OutcomeAutoDiscovered:
		return Note{
			Severity: SeverityInfo,
			Message: fmt.Sprintf("auto-discovered component '%s' (%s) in system '%s'; set %s to select explicitly",
				s.Component.ID, s.Component.Type, s.System.ID, config.EnvComponentID),
		}, true
	case OutcomeFallback:
		return Note{
			Severity: SeverityWarning,
			Message: fmt.Sprintf("no enabled AGENT component found; falling back to first component '%s' in system '%s'",
				s.Component.ID, s.System.ID),
		}, true
	}
	return Note{}, false
}

func byExplicitPair(doc *config.Document, h config.Hints) (*Selection, error) {
	if h.SystemID == "" || h.ComponentID == "" {
		return nil, nil
	}

	sys := findSystem(doc, h.SystemID)
	if sys == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrSystemNotFound, h.SystemID)
	}
	comp := findComponent(sys, h.ComponentID)
	if comp == nil {
		return nil, fmt.Errorf("%w: '%s' in system '%s'", ErrComponentNotFound, h.ComponentID, h.SystemID)
	}
	return &Selection{System: sys, Component: comp, Outcome: OutcomeExplicit}, nil
}

func byComponentID(doc *config.Document, h config.Hints) (*Selection, error) {
	if h.ComponentID == "" || h.SystemID != "" {
		return nil, nil
	}

	for i := range doc.Systems {
		sys := &doc.Systems[i]
		if comp := findComponent(sys, h.ComponentID); comp != nil {
			return &Selection{System: sys, Component: comp, Outcome: OutcomeComponentID}, nil
		}
	}
	return nil, fmt.Errorf("%w: '%s'", ErrComponentNotFound, h.ComponentID)
}

func firstEnabledAgent(doc *config.Document, h config.Hints) (*Selection, error) {
	if h.ComponentID != "" {
		return nil, nil
	}

	systems, err := autoScope(doc, h)
	if err != nil {
		return nil, err
	}
	for _, sys := range systems {
		for j := range sys.Components {
			comp := &sys.Components[j]
			if comp.Type == config.ComponentAgent && comp.IsEnabled() {
				return &Selection{System: sys, Component: comp, Outcome: OutcomeAutoDiscovered}, nil
			}
		}
	}
	return nil, nil
}

func firstComponent(doc *config.Document, h config.Hints) (*Selection, error) {
	if h.ComponentID != "" {
		return nil, nil
	}

	systems, err := autoScope(doc, h)
	if err != nil {
		return nil, err
	}
	for _, sys := range systems {
		if len(sys.Components) > 0 {
			return &Selection{System: sys, Component: &sys.Components[0], Outcome: OutcomeFallback}, nil
		}
	}
	return nil, nil
}

// autoScope returns the systems auto-discovery may pick from: the hinted
// system alone, or every system in document order.
func autoScope(doc *config.Document, h config.Hints) ([]*config.System, error) {
	if h.SystemID != "" {
		sys := findSystem(doc, h.SystemID)
		if sys == nil {
			return nil, fmt.Errorf("%w: '%s'", ErrSystemNotFound, h.SystemID)
		}
		return []*config.System{sys}, nil
	}

	systems := make([]*config.System, len(doc.Systems))
	for i := range doc.Systems {
		systems[i] = &doc.Systems[i]
	}
	return systems, nil
}

func findSystem(doc *config.Document, id string) *config.System {
	for i := range doc.Systems {
		if doc.Systems[i].ID == id {
			return &doc.Systems[i]
		}
	}
	return nil
}

func findComponent(sys *config.System, id string) *config.Component {
	for j := range sys.Components {
		if sys.Components[j].ID == id {
			return &sys.Components[j]
		}
	}
	return nil
}
