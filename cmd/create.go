package cmd

import (
	"fmt"
	"strings"

	"github.com/pha4ge/primaschema/config"
	"github.com/pha4ge/primaschema/internal/primaschema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// createCmd authors a brand-new scheme bundle from a bed and a reference.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new primer scheme bundle from a bed file and a reference",
	Long: `Create a new primer scheme bundle from a bed file and a reference.

Publishes the bundle under <schemes-path>/{name}/{amplicon-size}/{version},
refusing to overwrite an existing version directory. Contributors and target
organisms accept key=value lists, e.g.
--contributor "name=Jane Doe,email=jane@example.org" --organism "common_name=sars-cov-2"`,
	// sync binds the same key; bind per run so this command's flag wins here
	PreRun: func(cmd *cobra.Command, args []string) {
		viper.BindPFlag("schemes-path", cmd.Flags().Lookup("schemes-path"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		c := config.New()

		scheme, err := schemeFromFlags(cmd)
		if err != nil {
			stderr.Fatalln(err)
		}

		bedPath, _ := cmd.Flags().GetString("bed")
		refPath, _ := cmd.Flags().GetString("ref")

		dir, err := primaschema.Create(scheme, bedPath, refPath, c.SchemesPath)
		if err != nil {
			stderr.Fatalln(err)
		}
		fmt.Println(dir)
	},
}

// schemeFromFlags assembles and normalizes a metadata record from the create
// command's flags.
func schemeFromFlags(cmd *cobra.Command) (*primaschema.Scheme, error) {
	name, _ := cmd.Flags().GetString("name")
	version, _ := cmd.Flags().GetString("scheme-version")
	size, _ := cmd.Flags().GetInt("amplicon-size")
	status, _ := cmd.Flags().GetString("status")
	license, _ := cmd.Flags().GetString("license")
	derivedFrom, _ := cmd.Flags().GetString("derived-from")
	tags, _ := cmd.Flags().GetStringArray("tag")
	citations, _ := cmd.Flags().GetStringArray("citation")
	notes, _ := cmd.Flags().GetStringArray("note")
	contributors, _ := cmd.Flags().GetStringArray("contributor")
	organisms, _ := cmd.Flags().GetStringArray("organism")

	s := &primaschema.Scheme{
		SchemaVersion: primaschema.SchemaVersion,
		Name:          name,
		Version:       version,
		AmpliconSize:  size,
		Status:        primaschema.SchemeStatus(strings.ToUpper(status)),
		License:       primaschema.SchemeLicense(strings.ToUpper(license)),
		DerivedFrom:   derivedFrom,
		Citations:     citations,
		Notes:         notes,
	}
	for _, t := range tags {
		s.Tags = append(s.Tags, strings.ToUpper(t))
	}

	for _, raw := range contributors {
		s.Contributors = append(s.Contributors, contributorFromArg(raw))
	}
	for _, raw := range organisms {
		s.TargetOrganisms = append(s.TargetOrganisms, organismFromArg(raw))
	}

	if s.License == "" {
		s.License = primaschema.DefaultLicense
	}

	return s, nil
}

// parseKeyValues splits "k1=v1,k2=v2" into a map; tokens without "=" are
// ignored so a bare value can fall through to the caller's default field.
func parseKeyValues(raw string) map[string]string {
	kv := map[string]string{}
	for _, part := range strings.Split(raw, ",") {
		if k, v, found := strings.Cut(part, "="); found {
			kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return kv
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("name", "", "Canonical scheme name (lowercase)")
	createCmd.Flags().String("scheme-version", "", "Scheme version (v{x}.{y}.{z})")
	createCmd.Flags().Int("amplicon-size", 0, "Amplicon length in base pairs")
	createCmd.Flags().String("status", string(primaschema.StatusDraft), "Scheme status")
	createCmd.Flags().String("license", string(primaschema.DefaultLicense), "Scheme license")
	createCmd.Flags().String("derived-from", "", "Name of the parent scheme, if any")
	createCmd.Flags().StringArray("contributor", nil, "Contributor (repeatable, name=...,email=...,orcid=...)")
	createCmd.Flags().StringArray("organism", nil, "Target organism (repeatable, common_name=...,ncbi_tax_id=...)")
	createCmd.Flags().StringArray("tag", nil, "Scheme tag (repeatable)")
	createCmd.Flags().StringArray("citation", nil, "Citation URL (repeatable)")
	createCmd.Flags().StringArray("note", nil, "Free-text note (repeatable)")
	createCmd.Flags().StringP("bed", "b", "", "Path of the primer bed file")
	createCmd.Flags().StringP("ref", "r", "", "Path of the reference FASTA file")
	createCmd.Flags().String("schemes-path", "", "Root of the local scheme collection")

	createCmd.MarkFlagRequired("name")
	createCmd.MarkFlagRequired("scheme-version")
	createCmd.MarkFlagRequired("amplicon-size")
	createCmd.MarkFlagRequired("bed")
	createCmd.MarkFlagRequired("ref")
}
