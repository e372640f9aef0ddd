package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
)

// showIntervalsCmd prints amplicon start and end coordinates.
var showIntervalsCmd = &cobra.Command{
	Use:   "show-intervals <bed-path>",
	Short: "Show amplicon start and end coordinates given a bed file of primer coordinates",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records, err := primaschema.ReadBed(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}

		lines, err := primaschema.AmpliconIntervals(records)
		if err != nil {
			stderr.Fatalln(err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	},
}

// showDiscordantCmd prints primer records whose stored sequences do not
// match the reference sequence at their coordinates.
var showDiscordantCmd = &cobra.Command{
	Use:   "show-discordant-primers <scheme-dir>",
	Short: "Show primer records with sequences not matching the reference sequence",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		discordant, err := primaschema.DiscordantPrimers(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		if len(discordant) == 0 {
			return
		}

		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(writer, "chrom\tstart\tend\tname\tstored\tresolved\n")
		for _, d := range discordant {
			fmt.Fprintf(writer, "%s\t%d\t%d\t%s\t%s\t%s\n",
				d.Record.Chrom, d.Record.Start, d.Record.End, d.Record.Name, d.Record.Seq, d.Resolved)
		}
		writer.Flush()
	},
}

// subsetCmd extracts a single-chromosome scheme definition.
var subsetCmd = &cobra.Command{
	Use:   "subset <scheme-dir> <chrom>",
	Short: "Extract a primer.bed and reference.fasta scheme subset for a single chromosome",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		if err := primaschema.Subset(args[0], args[1], out); err != nil {
			stderr.Fatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(showIntervalsCmd)
	rootCmd.AddCommand(showDiscordantCmd)
	rootCmd.AddCommand(subsetCmd)

	subsetCmd.Flags().StringP("out", "o", "built", "Directory in which to save the subset scheme")
}
