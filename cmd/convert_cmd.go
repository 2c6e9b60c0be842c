package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/minitoml/minitoml/parse/toml"
	"github.com/minitoml/minitoml/pkg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type ConvertParams struct {
	Input  string `json:"input"`  // input file path
	Output string `json:"output"` // output file path, stdout when empty
	Format string `json:"format"` // json or yaml
	Pretty bool   `json:"pretty"` // indent JSON output
	Exact  bool   `json:"exact"`  // parse decimals exactly
}

var convertParams *ConvertParams

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a TOML file to JSON or YAML",
	Long: "Convert parses the input file and re-encodes the whole document. Integers " +
		"wider than 64 bits and exact decimals stay numeric in the output instead of " +
		"being rounded through a float64.",
	RunE: convertRun,
}

func init() {
	convertParams = &ConvertParams{}
	convertCmd.Flags().StringVarP(&convertParams.Input, "input", "i", "", "input file path (- for stdin)")
	convertCmd.Flags().StringVarP(&convertParams.Output, "output", "o", "", "output file path (stdout when empty)")
	convertCmd.Flags().StringVarP(&convertParams.Format, "format", "f", "json", "output format: json or yaml")
	convertCmd.Flags().BoolVarP(&convertParams.Pretty, "pretty", "p", false, "indent JSON output")
	convertCmd.Flags().BoolVarP(&convertParams.Exact, "exact", "e", false, "parse decimal numbers exactly instead of as float64")
}

func convertRun(cmd *cobra.Command, args []string) error {
	var opts []toml.Option
	if convertParams.Exact {
		opts = append(opts, toml.WithExactDecimals(true))
	}
	doc, err := loadDocument(convertParams.Input, opts...)
	if err != nil {
		return err
	}

	var data []byte
	switch convertParams.Format {
	case "json":
		if convertParams.Pretty {
			data, err = json.MarshalIndent(doc.Untyped(), "", "  ")
		} else {
			data, err = json.Marshal(doc.Untyped())
		}
	case "yaml", "yml":
		data, err = yaml.Marshal(doc.Untyped())
	default:
		return fmt.Errorf("unsupported output format %q (json or yaml)", convertParams.Format)
	}
	if err != nil {
		return fmt.Errorf("encode %s error: %w", convertParams.Format, err)
	}

	if len(convertParams.Output) == 0 {
		out := cmd.OutOrStdout()
		out.Write(data)
		if len(data) == 0 || data[len(data)-1] != '\n' {
			fmt.Fprintln(out)
		}
		return nil
	}
	if err := pkg.WriteToFile(convertParams.Output, data); err != nil {
		return fmt.Errorf("write output file error: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(data), convertParams.Output)
	return nil
}
