package cmd

import (
	"fmt"

	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
)

// hashBedCmd computes the content-addressable digest of a coordinate file,
// auto-detecting the 6 vs 7 column layout.
var hashBedCmd = &cobra.Command{
	Use:   "hash-bed <bed-path>",
	Short: "Generate the content-addressable checksum of a primer coordinate file",
	Long: `Generate the content-addressable checksum of a primer coordinate file.

A 6-column scheme.bed is backfilled from a reference before hashing: pass
--ref, or keep a reference.fasta next to the bed file. A 7-column primer.bed
and its 6-column equivalent hash identically.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		refPath, _ := cmd.Flags().GetString("ref")

		digest, err := primaschema.HashBed(args[0], refPath)
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Println(digest)
	},
}

// hashRefCmd computes the content-addressable digest of a reference FASTA.
var hashRefCmd = &cobra.Command{
	Use:   "hash-ref <fasta-path>",
	Short: "Generate the content-addressable checksum of a reference sequence file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		digest, err := primaschema.HashRef(args[0])
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Println(digest)
	},
}

func init() {
	rootCmd.AddCommand(hashBedCmd)
	rootCmd.AddCommand(hashRefCmd)

	hashBedCmd.Flags().StringP("ref", "r", "", "Reference FASTA used to backfill a 6-column bed file")
}
