package cmd

import (
	"fmt"

	"github.com/bianoble/fleetenv/internal/config"
	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/bianoble/fleetenv/internal/normalize"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <config-file>",
	Short: "List the systems and components of a document",
	Long: `Shows every component with its system, type, enabled state and port, and
which component extract would select with the current flags and environment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		doc, err := loadDocument(log, args[0])
		if err != nil {
			return err
		}

		if len(doc.Systems) == 0 {
			info("No systems defined.")
			return nil
		}

		fmt.Fprintf(stdout, "%-20s %-10s %-20s %-6s %-8s %s\n", "SYSTEM", "TYPE", "COMPONENT", "KIND", "ENABLED", "PORT")
		for _, sys := range doc.Systems {
			if len(sys.Components) == 0 {
				fmt.Fprintf(stdout, "%-20s %-10s %-20s %-6s %-8s %s\n", sys.ID, sys.Type, "-", "-", "-", "-")
				continue
			}
			for _, comp := range sys.Components {
				fmt.Fprintf(stdout, "%-20s %-10s %-20s %-6s %-8s %s\n",
					sys.ID, sys.Type, comp.ID, comp.Type, enabledLabel(comp), portLabel(comp))
			}
		}

		h, err := resolveHints("")
		if err != nil {
			return err
		}
		sel, err := engine.Discover(doc, h)
		if err != nil {
			// Listing is still useful when nothing can be selected.
			detail("no component selected: %v", err)
			return nil
		}
		info("")
		info("Selected: %s/%s (%s)", sel.System.ID, sel.Component.ID, sel.Outcome)
		return nil
	},
}

func enabledLabel(comp config.Component) string {
	if comp.IsEnabled() {
		return "yes"
	}
	return "no"
}

func portLabel(comp config.Component) string {
	if comp.Deployment == nil {
		return "-"
	}
	d, err := normalize.Normalize(comp.Deployment).Known()
	if err != nil || d.Port == "" {
		return "-"
	}
	return d.Port
}

func init() {
	addSelectorFlags(listCmd.Flags())
	rootCmd.AddCommand(listCmd)
}
