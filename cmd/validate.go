package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/config"
	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// validateCmd checks one scheme bundle, or every bundle under a tree.
var validateCmd = &cobra.Command{
	Use:   "validate <scheme-dir>",
	Short: "Validate one or more primer scheme bundles",
	Long: `Validate one or more primer scheme bundles comprising info.json,
primer.bed and reference.fasta.

Checks metadata schema validity, path-vs-metadata consistency, raw file
checksums, content-addressable checksums and the derived README. With
--recursive each bundle is validated independently; failures are collected
and reported at the end.`,
	Args: cobra.ExactArgs(1),
	// bind here rather than in init: several commands share these keys, and a
	// global init-time bind would route them all through one command's flags
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("ignore-checksums", cmd.Flags().Lookup("ignore-checksums"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()
		recursive, _ := cmd.Flags().GetBool("recursive")
		opts := primaschema.Options{IgnoreChecksums: c.IgnoreChecksums}

		if !recursive {
			if _, err := primaschema.ValidateBundle(args[0], opts); err != nil {
				stderr.Fatalf("%s: %v", args[0], err)
			}
			fmt.Printf("%s is valid\n", args[0])
			return
		}

		schemes, failures, err := primaschema.ValidateAll(args[0], opts)
		if err != nil {
			stderr.Fatalln(err)
		}
		for _, f := range failures {
			stderr.Printf("%s: %v", f.Dir, f.Err)
		}
		fmt.Printf("%d valid, %d invalid\n", len(schemes), len(failures))
		if len(failures) > 0 {
			stderr.Fatalf("%d of %d bundles failed validation", len(failures), len(schemes)+len(failures))
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolP("recursive", "R", false, "Recursively find and validate scheme bundles")
	validateCmd.Flags().Bool("ignore-checksums", false, "Downgrade checksum mismatches to warnings")
}
