package cmd

import (
	"fmt"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/bianoble/fleetenv/internal/envfile"
	"github.com/bianoble/fleetenv/internal/report"
	"github.com/spf13/cobra"
)

const toolName = "fleetenv"

var (
	extractOutput       string
	extractValidateOnly bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <config-file> [component-id]",
	Short: "Write the environment variables of one component",
	Long: `Selects one component of the document and writes its deployment record as
KEY=value lines, preceded by comment lines naming the component, system and
generation time. Field names are converted to UPPER_SNAKE_CASE; moduleUrls and
moduleApiUrls entries become VITE_<KEY>_URL and VITE_<KEY>_API_URL.

The component is selected by --system and --component (or the positional
component id), then COMPONENT_ID / SYSTEM_ID from the environment, then the
first enabled AGENT component, then the first component of the first system.

Validation issues of the selected component are printed to stderr. If any is an
error, nothing is written and the command exits non-zero. With --validate-only
a report for the component is printed instead of the variables.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		doc, err := loadDocument(log, args[0])
		if err != nil {
			return err
		}

		var positional string
		if len(args) == 2 {
			positional = args[1]
		}
		h, err := resolveHints(positional)
		if err != nil {
			return err
		}
		log.Debug().Str("system", h.SystemID).Str("component", h.ComponentID).Msg("selector hints")

		if extractValidateOnly {
			return validateSelected(doc, h)
		}

		cfg, err := engine.Extract(doc, h)
		if err != nil {
			return err
		}
		log.Component(cfg.SystemID, cfg.ComponentID).Debug().Str("outcome", string(cfg.Outcome)).Msg("component selected")

		for _, n := range cfg.Notes {
			printNote(n)
		}
		for _, i := range cfg.Issues {
			printIssue(i)
		}
		if errs := cfg.Errors(); len(errs) > 0 {
			return fmt.Errorf("component '%s' has %d validation error(s); no output written", cfg.ComponentID, len(errs))
		}

		data := envfile.Render(envfile.Header{
			Tool:        toolName,
			SystemID:    cfg.SystemID,
			ComponentID: cfg.ComponentID,
			Generated:   now(),
		}, cfg.Vars)

		if extractOutput == "" || extractOutput == "-" {
			_, err := stdout.Write(data)
			return err
		}

		if err := envfile.Save(extractOutput, data, 0600); err != nil {
			return fmt.Errorf("writing %s: %w", extractOutput, err)
		}
		info("Wrote %d variables for %s/%s to %s", len(cfg.Vars), cfg.SystemID, cfg.ComponentID, extractOutput)
		for _, k := range cfg.Keys() {
			detail("%s", k)
		}
		return nil
	},
}

// validateSelected prints a report for the component that extract would use.
func validateSelected(doc *config.Document, h config.Hints) error {
	sel, err := engine.Discover(doc, h)
	if err != nil {
		return err
	}
	if note, ok := sel.Note(); ok {
		printNote(note)
	}

	issues := engine.ValidateComponent(sel.System, sel.Component)
	title := fmt.Sprintf("Component '%s' (%s) in system '%s'", sel.Component.ID, sel.Component.Type, sel.System.ID)
	if err := report.Write(stdout, title, issues, reportOptions()); err != nil {
		return err
	}

	if n := countErrors(issues); n > 0 {
		return fmt.Errorf("component '%s' has %d validation error(s)", sel.Component.ID, n)
	}
	return nil
}

func countErrors(issues []engine.Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == engine.SeverityError {
			n++
		}
	}
	return n
}

func init() {
	addSelectorFlags(extractCmd.Flags())
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "write to file instead of stdout")
	extractCmd.Flags().BoolVar(&extractValidateOnly, "validate-only", false, "print a validation report for the selected component instead of variables")
	rootCmd.AddCommand(extractCmd)
}
