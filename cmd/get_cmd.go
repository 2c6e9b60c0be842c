package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type GetParams struct {
	Key   string `json:"key"`   // dotted key to look up
	Input string `json:"input"` // input file path
	Raw   bool   `json:"raw"`   // print strings unquoted
}

var getParams *GetParams

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Look up one dotted key in a TOML file",
	Long: "Get parses the input file, walks the dotted key through nested tables " +
		"and prints the value it finds as JSON. Missing keys are an error, so the " +
		"exit code can gate scripts.",
	RunE: getRun,
}

func init() {
	getParams = &GetParams{}
	getCmd.Flags().StringVarP(&getParams.Key, "key", "k", "", "dotted key, e.g. server.ports.http")
	getCmd.Flags().StringVarP(&getParams.Input, "input", "i", "", "input file path (- for stdin)")
	getCmd.Flags().BoolVarP(&getParams.Raw, "raw", "r", false, "print strings and date-times without quotes")
}

func getRun(cmd *cobra.Command, args []string) error {
	if len(getParams.Key) == 0 {
		return fmt.Errorf("no key to look up (use --key)")
	}
	doc, err := loadDocument(getParams.Input)
	if err != nil {
		return err
	}
	value, err := doc.RequirePath(getParams.Key)
	if err != nil {
		return err
	}
	if getParams.Raw {
		fmt.Fprintln(cmd.OutOrStdout(), value.String())
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), value.JSON())
	return nil
}
