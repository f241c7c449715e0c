package cmd

import (
	"fmt"

	"github.com/bianoble/fleetenv/internal/engine"
	"github.com/bianoble/fleetenv/internal/report"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config-file>",
	Short: "Validate a fleet deployment document",
	Long: `Checks the whole document: required keys, unique system and component ids,
component types, and the deployment rules of every component (ports, database
usage mode, MariaDB connection fields, deprecated field names).

Every issue is collected before reporting. Exit 0 if no error-severity issue
was found; warnings alone do not fail validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		doc, err := loadDocument(log, args[0])
		if err != nil {
			return err
		}

		result := engine.Validate(doc)
		log.Debug().Bool("valid", result.Valid).Int("issues", len(result.Issues)).Msg("document validated")

		if quiet {
			for _, i := range result.Errors() {
				printIssue(i)
			}
		} else if err := report.Write(stdout, "Validating "+args[0], result.Issues, reportOptions()); err != nil {
			return err
		}

		if !result.Valid {
			return fmt.Errorf("%s has %d validation error(s)", args[0], len(result.Errors()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
