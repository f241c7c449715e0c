package fleetenv

import (
	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
)

// Type aliases re-export the document model and engine result types as the
// public API.

type Document = config.Document
type System = config.System
type Component = config.Component
type ComponentType = config.ComponentType
type Record = config.Record
type Hints = config.Hints

type Severity = engine.Severity
type Issue = engine.Issue
type Note = engine.Note
type Outcome = engine.Outcome
type Selection = engine.Selection
type ValidationResult = engine.ValidationResult
type ExtractedConfig = engine.ExtractedConfig

// Errors returned by Load and Extract; match them with errors.Is.
var (
	ErrDocumentNotFound  = config.ErrDocumentNotFound
	ErrMalformedDocument = config.ErrMalformedDocument
	ErrNoSystems         = engine.ErrNoSystems
	ErrSystemNotFound    = engine.ErrSystemNotFound
	ErrComponentNotFound = engine.ErrComponentNotFound
	ErrMissingDeployment = engine.ErrMissingDeployment
)
