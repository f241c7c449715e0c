package engine

import "errors"

// Discovery and extraction failures. They are wrapped with the offending
// identifiers; match them with errors.Is.
var (
	ErrNoSystems         = errors.New("document defines no systems")
	ErrSystemNotFound    = errors.New("system not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrMissingDeployment = errors.New("component has no deployment record")
)
