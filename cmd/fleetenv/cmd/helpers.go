package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/bianoble/fleetenv/internal/logger"
	"github.com/bianoble/fleetenv/internal/report"
	"github.com/spf13/pflag"
)

// Output streams and clock, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	now              = time.Now
)

// Selector flags shared by commands that pick a component.
var (
	selectSystem    string
	selectComponent string
)

// addSelectorFlags registers --system and --component on fs.
func addSelectorFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&selectSystem, "system", "s", "", "system id (overrides SYSTEM_ID)")
	fs.StringVarP(&selectComponent, "component", "c", "", "component id (overrides COMPONENT_ID)")
}

// resolveHints combines the selector flags, an optional positional component
// id and the environment. Flags and arguments win over the environment.
func resolveHints(positional string) (config.Hints, error) {
	explicit := config.Hints{SystemID: selectSystem, ComponentID: selectComponent}
	if positional != "" {
		if explicit.ComponentID != "" && explicit.ComponentID != positional {
			return config.Hints{}, fmt.Errorf("component given twice: argument '%s' and --component '%s'", positional, explicit.ComponentID)
		}
		explicit.ComponentID = positional
	}
	return config.ResolveHints(explicit)
}

// newLogger creates the diagnostic logger for the global verbosity flags.
func newLogger() *logger.Logger {
	return logger.New(stderr, logger.Options{Verbose: verbose, Quiet: quiet, NoColor: noColor})
}

// loadDocument reads and parses the document at path.
func loadDocument(log *logger.Logger, path string) (*config.Document, error) {
	log.Debug().Str("path", path).Str("format", string(config.FormatFromPath(path))).Msg("loading document")
	doc, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

func reportOptions() report.Options {
	return report.Options{NoColor: noColor}
}

// printIssue writes an issue to stderr tagged with its severity. Warnings are
// dropped in quiet mode.
func printIssue(i engine.Issue) {
	switch i.Severity {
	case engine.SeverityError:
		errorf("%s", i)
	case engine.SeverityWarning:
		warnf("%s", i)
	default:
		notef("%s", i)
	}
}

// printNote writes a discovery note to stderr.
func printNote(n engine.Note) {
	if n.Severity == engine.SeverityWarning {
		warnf("%s", n.Message)
		return
	}
	notef("%s", n.Message)
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Fprintf(stdout, "  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(stderr, "error: "+format+"\n", args...)
}

// warnf prints a warning to stderr unless quiet mode is active.
func warnf(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
	}
}

// notef prints an informational message to stderr unless quiet mode is active.
func notef(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stderr, "info: "+format+"\n", args...)
	}
}
