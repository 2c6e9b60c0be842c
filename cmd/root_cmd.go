package cmd

import (
	"fmt"
	"os"

	"github.com/minitoml/minitoml/parse"
	"github.com/minitoml/minitoml/parse/toml"
	"github.com/minitoml/minitoml/pkg"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "minitoml",
	Short: "Minitoml is a strict reader for TOML configuration files.",
	Long: "Minitoml reads the line-oriented core of TOML with exact numeric handling " +
		"and errors that point at the offending line and column. It can check files, " +
		"look up single keys, and convert documents to JSON or YAML.",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Minitoml",
	Long:  `All software has versions. This is Minitoml's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Minitoml v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(convertCmd)
}

// loadDocument parses the TOML file every subcommand starts from. "-" reads
// standard input.
func loadDocument(path string, opts ...toml.Option) (*toml.Table, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("no input file path (use --input)")
	}
	if path == "-" {
		return parse.ParseToml(os.Stdin, opts...)
	}
	exist, err := pkg.CheckFileExist(path)
	if err != nil {
		return nil, fmt.Errorf("check file exist error: %w", err)
	}
	if !exist {
		return nil, fmt.Errorf("input file %s not exist", path)
	}
	return parse.ParseTomlFile(path, opts...)
}
