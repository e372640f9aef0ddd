package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
)

// diffCmd prints the symmetric difference of two bed files. No output means
// the files describe the same primer set.
var diffCmd = &cobra.Command{
	Use:   "diff <bed1-path> <bed2-path>",
	Short: "Show the symmetric difference of records in two bed files",
	Long: `Show the symmetric difference of records in two bed files.

Each printed record exists in only one of the two files, labelled with its
origin. With --only-positions, records are matched on (chrom, start, end)
alone, so renames and pool changes at identical coordinates are ignored.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		onlyPositions, _ := cmd.Flags().GetBool("only-positions")

		a, err := primaschema.ReadBed(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		b, err := primaschema.ReadBed(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}

		diffs := primaschema.DiffBed(filepath.Base(args[0]), a, filepath.Base(args[1]), b, onlyPositions)
		if len(diffs) == 0 {
			return
		}

		writer := tabwriter.NewWriter(os.Stdout, 0, 4, 3, ' ', 0)
		fmt.Fprintf(writer, "chrom\tstart\tend\tname\tpool\tstrand\tseq\torigin\n")
		for _, d := range diffs {
			r := d.Record
			fmt.Fprintf(writer, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
				r.Chrom, r.Start, r.End, r.Name, r.Pool, r.Strand, r.Seq, d.Origin)
		}
		writer.Flush()
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().Bool("only-positions", false, "Compare primer positions only, ignoring names, pools and sequences")
}
