// Package fleetenv provides the public Go library API for fleetenv.
//
// fleetenv reads a fleet deployment document, selects one component and
// flattens its deployment record into environment variables. This package
// exposes the same operations as the command for embedding in other Go
// programs.
//
// # Basic Usage
//
//	client := fleetenv.New(fleetenv.Options{})
//
//	doc, err := client.Load("fleet.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Check the whole document
//	result := client.Validate(doc)
//
//	// Extract the variables for one component
//	cfg, err := client.Extract(doc, fleetenv.Hints{ComponentID: "comp-a"})
//	os.Stdout.Write(client.Render(cfg))
package fleetenv

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/bianoble/fleetenv/internal/envfile"
	"github.com/rs/zerolog"
)

// ToolName appears in the header of rendered env streams.
const ToolName = "fleetenv"

// Options configures a fleetenv client.
type Options struct {
	// Logger receives debug diagnostics. The zero value discards them.
	Logger zerolog.Logger

	// Now stamps rendered env streams. Defaults to time.Now.
	Now func() time.Time

	// IgnoreEnv stops Extract and ValidateComponent from consulting the
	// COMPONENT_ID / SYSTEM_ID family of environment variables.
	IgnoreEnv bool
}

// ValidationError is returned by Extract when the selected component has
// error-severity issues.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Client is the main entry point for the fleetenv library.
type Client struct {
	log       zerolog.Logger
	now       func() time.Time
	ignoreEnv bool
}

// New creates a fleetenv Client.
func New(opts Options) *Client {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		log:       opts.Logger,
		now:       now,
		ignoreEnv: opts.IgnoreEnv,
	}
}

// Load reads a JSON, YAML or TOML document, chosen by file extension.
func (c *Client) Load(path string) (*Document, error) {
	c.log.Debug().Str("path", path).Str("format", string(config.FormatFromPath(path))).Msg("loading document")
	doc, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("systems", len(doc.Systems)).Msg("document loaded")
	return doc, nil
}

// Validate checks the whole document.
func (c *Client) Validate(doc *Document) ValidationResult {
	result := engine.Validate(doc)
	c.log.Debug().Bool("valid", result.Valid).Int("issues", len(result.Issues)).Msg("document validated")
	return result
}

// ValidateComponent selects a component and runs the per-component rules
// against it.
func (c *Client) ValidateComponent(doc *Document, h Hints) (*Selection, []Issue, error) {
	sel, err := c.discover(doc, h)
	if err != nil {
		return nil, nil, err
	}
	return sel, engine.ValidateComponent(sel.System, sel.Component), nil
}

// Extract selects a component and flattens its deployment record. When the
// component has error-severity issues the result is still returned, together
// with a *ValidationError.
func (c *Client) Extract(doc *Document, h Hints) (*ExtractedConfig, error) {
	h, err := c.hints(h)
	if err != nil {
		return nil, err
	}

	cfg, err := engine.Extract(doc, h)
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("system", cfg.SystemID).
		Str("component", cfg.ComponentID).
		Str("outcome", string(cfg.Outcome)).
		Int("vars", len(cfg.Vars)).
		Msg("component extracted")

	if errs := cfg.Errors(); len(errs) > 0 {
		return cfg, &ValidationError{Issues: errs}
	}
	return cfg, nil
}

// Render returns the env stream for cfg, stamped with the client clock.
func (c *Client) Render(cfg *ExtractedConfig) []byte {
	return envfile.Render(envfile.Header{
		Tool:        ToolName,
		SystemID:    cfg.SystemID,
		ComponentID: cfg.ComponentID,
		Generated:   c.now(),
	}, cfg.Vars)
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func (c *Client) discover(doc *Document, h Hints) (*Selection, error) {
	h, err := c.hints(h)
	if err != nil {
		return nil, err
	}
	return engine.Discover(doc, h)
}

func (c *Client) hints(h Hints) (Hints, error) {
	if c.ignoreEnv {
		return h, nil
	}
	return config.ResolveHints(h)
}
