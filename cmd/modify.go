package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
)

// modifyCmd groups the metadata-edit subcommands. Every edit re-validates
// the record and regenerates the derived README.
var modifyCmd = &cobra.Command{
	Use:   "modify",
	Short: "Edit a scheme's metadata record and regenerate its derived files",
}

var addContributorCmd = &cobra.Command{
	Use:   "add-contributor <info-path> <contributor>",
	Short: "Add a contributor (name=...,email=...,orcid=..., or a bare name)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		contributor := contributorFromArg(args[1])

		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			s.Contributors = append(s.Contributors, contributor)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var removeContributorCmd = &cobra.Command{
	Use:   "remove-contributor <info-path> <index>",
	Short: "Remove a contributor by index",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := parseIndex(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}

		err = primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			if idx >= len(s.Contributors) {
				return indexOutOfRange(idx, len(s.Contributors))
			}
			s.Contributors = append(s.Contributors[:idx], s.Contributors[idx+1:]...)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var updateContributorCmd = &cobra.Command{
	Use:   "update-contributor <info-path> <index> <contributor>",
	Short: "Replace the contributor at an index",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := parseIndex(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}
		contributor := contributorFromArg(args[2])

		err = primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			if idx >= len(s.Contributors) {
				return indexOutOfRange(idx, len(s.Contributors))
			}
			s.Contributors[idx] = contributor
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var addVendorCmd = &cobra.Command{
	Use:   "add-vendor <info-path> <vendor>",
	Short: "Add a vendor (organisation_name=...,home_page=...,kit_name=..., or a bare name)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		vendor := vendorFromArg(args[1])

		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			s.Vendors = append(s.Vendors, vendor)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var removeVendorCmd = &cobra.Command{
	Use:   "remove-vendor <info-path> <index>",
	Short: "Remove a vendor by index",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := parseIndex(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}

		err = primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			if idx >= len(s.Vendors) {
				return indexOutOfRange(idx, len(s.Vendors))
			}
			s.Vendors = append(s.Vendors[:idx], s.Vendors[idx+1:]...)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var updateVendorCmd = &cobra.Command{
	Use:   "update-vendor <info-path> <index> <vendor>",
	Short: "Replace the vendor at an index",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := parseIndex(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}
		vendor := vendorFromArg(args[2])

		err = primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			if idx >= len(s.Vendors) {
				return indexOutOfRange(idx, len(s.Vendors))
			}
			s.Vendors[idx] = vendor
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var addOrganismCmd = &cobra.Command{
	Use:   "add-target-organism <info-path> <organism>",
	Short: "Add a target organism (common_name=...,ncbi_tax_id=..., or a bare common name)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		organism := organismFromArg(args[1])

		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			s.TargetOrganisms = append(s.TargetOrganisms, organism)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var removeOrganismCmd = &cobra.Command{
	Use:   "remove-target-organism <info-path> <index>",
	Short: "Remove a target organism by index",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		idx, err := parseIndex(args[1])
		if err != nil {
			stderr.Fatalln(err)
		}

		err = primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			if idx >= len(s.TargetOrganisms) {
				return indexOutOfRange(idx, len(s.TargetOrganisms))
			}
			s.TargetOrganisms = append(s.TargetOrganisms[:idx], s.TargetOrganisms[idx+1:]...)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var addTagCmd = &cobra.Command{
	Use:   "add-tag <info-path> <tag>",
	Short: "Add a tag to the scheme",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tag := strings.ToUpper(args[1])

		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			for _, t := range s.Tags {
				if t == tag {
					return nil
				}
			}
			s.Tags = append(s.Tags, tag)
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var removeTagCmd = &cobra.Command{
	Use:   "remove-tag <info-path> <tag>",
	Short: "Remove a tag from the scheme",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		tag := strings.ToUpper(args[1])

		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			kept := s.Tags[:0]
			for _, t := range s.Tags {
				if t != tag {
					kept = append(kept, t)
				}
			}
			s.Tags = kept
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var updateStatusCmd = &cobra.Command{
	Use:   "update-status <info-path> <status>",
	Short: "Update the scheme status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			s.Status = primaschema.SchemeStatus(strings.ToUpper(args[1]))
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

var updateLicenseCmd = &cobra.Command{
	Use:   "update-license <info-path> <license>",
	Short: "Update the scheme license",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := primaschema.ModifyScheme(args[0], func(s *primaschema.Scheme) error {
			s.License = primaschema.SchemeLicense(strings.ToUpper(args[1]))
			return nil
		})
		if err != nil {
			stderr.Fatalln(err)
		}
	},
}

// regenerateCmd recomputes checksums and the README for a published bundle.
var regenerateCmd = &cobra.Command{
	Use:   "regenerate <info-path>",
	Short: "Regenerate a bundle's checksums and README",
	Long: `Regenerate a bundle's checksums and README.

Optionally rewrites primer.bed in canonical sort order first, then recomputes
the raw file checksums and the content-addressable checksums and regenerates
the README.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reformat, _ := cmd.Flags().GetBool("reformat-bed")

		if err := primaschema.Regenerate(args[0], reformat); err != nil {
			stderr.Fatalln(err)
		}
	},
}

// contributorFromArg parses a key=value contributor argument; a bare string
// is the contributor's name.
func contributorFromArg(raw string) primaschema.Contributor {
	kv := parseKeyValues(raw)
	contributor := primaschema.Contributor{Name: kv["name"], Email: kv["email"], Orcid: kv["orcid"]}
	if contributor.Name == "" {
		contributor.Name = raw
	}

	return contributor
}

// vendorFromArg parses a key=value vendor argument; a bare string is the
// organisation name.
func vendorFromArg(raw string) primaschema.Vendor {
	kv := parseKeyValues(raw)
	vendor := primaschema.Vendor{
		OrganisationName: kv["organisation_name"],
		HomePage:         kv["home_page"],
		KitName:          kv["kit_name"],
	}
	if vendor.OrganisationName == "" {
		vendor.OrganisationName = raw
	}

	return vendor
}

// organismFromArg parses a key=value target-organism argument; a bare string
// is the common name.
func organismFromArg(raw string) primaschema.TargetOrganism {
	kv := parseKeyValues(raw)
	organism := primaschema.TargetOrganism{CommonName: kv["common_name"], NcbiTaxID: kv["ncbi_tax_id"]}
	if organism.CommonName == "" && organism.NcbiTaxID == "" {
		organism.CommonName = raw
	}

	return organism
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, fmt.Errorf("invalid index %q", s)
	}

	return idx, nil
}

func indexOutOfRange(idx, length int) error {
	return fmt.Errorf("index %d out of range, max index is %d", idx, length-1)
}

func init() {
	rootCmd.AddCommand(modifyCmd)
	rootCmd.AddCommand(regenerateCmd)

	modifyCmd.AddCommand(addContributorCmd)
	modifyCmd.AddCommand(removeContributorCmd)
	modifyCmd.AddCommand(updateContributorCmd)
	modifyCmd.AddCommand(addVendorCmd)
	modifyCmd.AddCommand(removeVendorCmd)
	modifyCmd.AddCommand(updateVendorCmd)
	modifyCmd.AddCommand(addOrganismCmd)
	modifyCmd.AddCommand(removeOrganismCmd)
	modifyCmd.AddCommand(addTagCmd)
	modifyCmd.AddCommand(removeTagCmd)
	modifyCmd.AddCommand(updateStatusCmd)
	modifyCmd.AddCommand(updateLicenseCmd)

	regenerateCmd.Flags().Bool("reformat-bed", false, "Rewrite primer.bed in canonical sort order")
}
