package cmd

import (
	"fmt"

	"github.com/minitoml/minitoml/parse/toml"
	"github.com/spf13/cobra"
)

type CheckParams struct {
	Input string `json:"input"` // input file path
}

var checkParams *CheckParams

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse a TOML file and report the first error, if any",
	Long: "Check parses the input file all the way through. On success it prints a " +
		"one-line summary; on failure the error names the line and column, and the " +
		"exit code is non-zero.",
	RunE: checkRun,
}

func init() {
	checkParams = &CheckParams{}
	checkCmd.Flags().StringVarP(&checkParams.Input, "input", "i", "", "input file path (- for stdin)")
}

func checkRun(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(checkParams.Input)
	if err != nil {
		if loc, ok := toml.ErrorLocation(err); ok {
			return fmt.Errorf("%s: line %d, column %d: %w", checkParams.Input, loc.Line, loc.Offset+1, err)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d top-level keys\n", doc.Len())
	return nil
}
