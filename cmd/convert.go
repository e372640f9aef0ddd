package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
)

// sixToSevenCmd backfills a 6-column scheme.bed into a 7-column primer.bed.
var sixToSevenCmd = &cobra.Command{
	Use:   "6to7 <bed-path> <fasta-path>",
	Short: "Convert a 6-column scheme.bed to a 7-column primer.bed using reference backfill",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := primaschema.ReadBed(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		refs, err := primaschema.ReadFasta(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}

		backfilled, err := primaschema.SchemeToPrimer(records, refs)
		if err != nil {
			stderr.Fatalln(err)
		}
		out, err := primaschema.WriteBed(backfilled, true)
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Print(out)
	},
}

// sevenToSixCmd drops the sequence column from a 7-column primer.bed.
var sevenToSixCmd = &cobra.Command{
	Use:   "7to6 <bed-path>",
	Short: "Convert a 7-column primer.bed to a 6-column scheme.bed by removing a column",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := primaschema.ReadBed(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		if !primaschema.HasSequences(records) {
			stderr.Fatalf("%s is already in the 6-column layout", args[0])
		}

		out, err := primaschema.WriteBed(primaschema.PrimerToScheme(records), false)
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(sixToSevenCmd)
	rootCmd.AddCommand(sevenToSixCmd)
}
