package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/config"
	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// syncCmd retrieves or updates the local copy of the remote scheme repository.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Retrieve/update the local copy of the remote primer scheme repository",
	// create binds schemes-path too; bind per run so this command's flags win here
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("archive-url", cmd.Flags().Lookup("archive-url"))
		viper.BindPFlag("schemes-path", cmd.Flags().Lookup("schemes-path"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()
		if c.SchemesPath == "" {
			stderr.Fatalln("no schemes-path configured: pass --schemes-path or set PRIMASCHEMA_SCHEMES_PATH")
		}

		if err := primaschema.Synchronise(c.ArchiveURL, c.SchemesPath); err != nil {
			stderr.Fatalln(err)
		}
		fmt.Printf("schemes downloaded and extracted to %s\n", c.SchemesPath)
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("archive-url", config.DefaultArchiveURL, "Remote scheme collection archive (.tar.gz)")
	syncCmd.Flags().String("schemes-path", "", "Directory in which to extract the scheme collection")
}
