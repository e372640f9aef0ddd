package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd writes markdown documentation for every command to a directory.
var docsCmd = &cobra.Command{
	Use:    "docs <out-dir>",
	Short:  "Generate markdown documentation for the primaschema commands",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := doc.GenMarkdownTree(rootCmd, args[0]); err != nil {
			stderr.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
