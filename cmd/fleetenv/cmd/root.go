package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	verbose bool
	quiet   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "fleetenv",
	Short: "Extract per-component environment variables from a fleet deployment document",
	Long: `fleetenv reads a fleet deployment document (JSON, YAML or TOML) describing
systems and their AGENT and WEB components, validates it, selects one component
and flattens its deployment record into KEY=value environment variables.

The component is chosen from --system/--component flags, the COMPONENT_ID and
SYSTEM_ID environment variables (or their TARGET_ prefixed alternates), or by
auto-discovery of the first enabled AGENT component.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(stdout, "fleetenv %s\n", version)
		fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		fmt.Fprintf(stdout, "  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output and debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		errorf("%v", err)
		return err
	}
	return nil
}
