package config

import "errors"

// Errors returned by Load and Parse. Callers match them with errors.Is.
var (
	// ErrDocumentNotFound indicates the configuration document does not exist.
	ErrDocumentNotFound = errors.New("configuration document not found")
	// ErrMalformedDocument indicates the document could not be parsed or does not
	// have the shape of a fleet configuration document.
	ErrMalformedDocument = errors.New("malformed configuration document")
)
