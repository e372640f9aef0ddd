package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/config"
	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildIndexCmd builds or updates the manifest index from a tree of bundles.
var buildIndexCmd = &cobra.Command{
	Use:   "build-index <schemes-dir>",
	Short: "Build a manifest index from a tree of scheme bundles",
	Long: `Build a manifest index from a tree of scheme bundles.

Every metadata record found under <schemes-dir> is projected to a manifest
entry and merged into the index, in input order. With --manifest an existing
index is loaded first and updated in place. Under strict merging (default),
re-adding a known (name, amplicon size, version) with different file
checksums is a conflict; pass --permissive to overwrite instead.`,
	Args: cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("base-url", cmd.Flags().Lookup("base-url"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()
		manifestPath, _ := cmd.Flags().GetString("manifest")
		outPath, _ := cmd.Flags().GetString("out")
		permissive, _ := cmd.Flags().GetBool("permissive")

		index := primaschema.NewIndex()
		if manifestPath != "" {
			loaded, err := primaschema.ReadIndex(manifestPath)
			if err != nil {
				stderr.Fatalln(err)
			}
			index = loaded
		}

		dirs, err := primaschema.FindBundles(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		if len(dirs) == 0 {
			stderr.Fatalf("no scheme bundles found under %s", args[0])
		}

		var schemes []*primaschema.Scheme
		for _, dir := range dirs {
			s, err := primaschema.ReadBundleScheme(dir)
			if err != nil {
				stderr.Fatalf("%s: %v", dir, err)
			}
			schemes = append(schemes, s)
		}

		if err := index.BuildFrom(schemes, c.BaseURL, !permissive); err != nil {
			stderr.Fatalln(err)
		}

		if outPath == "" {
			dat, err := index.MarshalJSON()
			if err != nil {
				stderr.Fatalln(err)
			}
			fmt.Println(string(dat))
			return
		}
		if err := primaschema.WriteIndex(outPath, index); err != nil {
			stderr.Fatalln(err)
		}
		fmt.Printf("wrote %d scheme versions to %s\n", index.Len(), outPath)
	},
}

func init() {
	rootCmd.AddCommand(buildIndexCmd)

	buildIndexCmd.Flags().StringP("manifest", "m", "", "Existing manifest index to update")
	buildIndexCmd.Flags().StringP("out", "o", "", "File to write the index to (default stdout)")
	buildIndexCmd.Flags().Bool("permissive", false, "Overwrite conflicting entries instead of failing")
	buildIndexCmd.Flags().String("base-url", "", "Base URL prepended to manifest file URLs")
}
