package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/config"
	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildCmd validates bundles and publishes their canonical form.
var buildCmd = &cobra.Command{
	Use:   "build <scheme-dir>",
	Short: "Build one or more primer scheme bundles into canonical form",
	Long: `Build one or more primer scheme bundles into canonical form.

Writes the canonically sorted 7-column primer.bed, a companion 6-column
scheme.bed, the reference, recomputed checksums and a regenerated README
into <out>/{name}/{amplicon_size}/{version}. Files are staged in a
temporary directory and only moved into place once every step succeeds.`,
	Args: cobra.ExactArgs(1),
	// several commands share this key; binding per run keeps it attached to
	// the running command's flag
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("ignore-checksums", cmd.Flags().Lookup("ignore-checksums"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()
		out, _ := cmd.Flags().GetString("out")
		recursive, _ := cmd.Flags().GetBool("recursive")
		opts := primaschema.Options{IgnoreChecksums: c.IgnoreChecksums}

		if !recursive {
			dir, err := primaschema.Build(args[0], out, opts)
			if err != nil {
				stderr.Fatalf("%s: %v", args[0], err)
			}
			fmt.Println(dir)
			return
		}

		built, failures, err := primaschema.BuildAll(args[0], out, opts)
		if err != nil {
			stderr.Fatalln(err)
		}
		for _, dir := range built {
			fmt.Println(dir)
		}
		for _, f := range failures {
			stderr.Printf("%s: %v", f.Dir, f.Err)
		}
		if len(failures) > 0 {
			stderr.Fatalf("%d of %d bundles failed to build", len(failures), len(built)+len(failures))
		}
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("out", "o", "built", "Directory in which to publish built bundles")
	buildCmd.Flags().BoolP("recursive", "R", false, "Recursively find, validate and build scheme bundles")
	buildCmd.Flags().Bool("ignore-checksums", false, "Downgrade checksum mismatches to warnings")
}
