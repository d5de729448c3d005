package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/bizfit/internal/answers"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (answer aliases v%d)\n", app, version, answers.AliasVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
