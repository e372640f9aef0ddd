package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pha4ge/primaschema/internal/primaschema"
)

// testBundleInfo authors a minimal published bundle and returns its
// info.json path.
func testBundleInfo(t *testing.T) string {
	t.Helper()

	inputs := t.TempDir()
	bedPath := filepath.Join(inputs, "scheme.bed")
	refPath := filepath.Join(inputs, "reference.fasta")

	bed := "MN908947.3\t30\t54\tsarscov2_1_LEFT\t1\t+\n" +
		"MN908947.3\t385\t410\tsarscov2_1_RIGHT\t1\t-\n"
	ref := ">MN908947.3\n" + strings.Repeat("ACGT", 150) + "\n"
	if err := os.WriteFile(bedPath, []byte(bed), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(refPath, []byte(ref), 0644); err != nil {
		t.Fatal(err)
	}

	s := &primaschema.Scheme{
		SchemaVersion:   primaschema.SchemaVersion,
		Name:            "sarscov2-test",
		AmpliconSize:    400,
		Version:         "v1.0.0",
		Contributors:    []primaschema.Contributor{{Name: "Jane Doe"}},
		TargetOrganisms: []primaschema.TargetOrganism{{CommonName: "SARS-CoV-2"}},
		Status:          primaschema.StatusDraft,
		License:         primaschema.DefaultLicense,
	}
	dir, err := primaschema.Create(s, bedPath, refPath, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	return filepath.Join(dir, primaschema.MetadataFileName)
}

func Test_vendorSubcommands(t *testing.T) {
	infoPath := testBundleInfo(t)

	addVendorCmd.Run(addVendorCmd, []string{infoPath, "organisation_name=Acme Oligos,kit_name=Kit 1"})
	s, err := primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Vendors) != 1 || s.Vendors[0].OrganisationName != "Acme Oligos" || s.Vendors[0].KitName != "Kit 1" {
		t.Fatalf("vendors after add = %+v", s.Vendors)
	}

	updateVendorCmd.Run(updateVendorCmd, []string{infoPath, "0", "organisation_name=Oligo Corp,home_page=https://example.org"})
	s, err = primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if s.Vendors[0].OrganisationName != "Oligo Corp" || s.Vendors[0].HomePage != "https://example.org" {
		t.Fatalf("vendors after update = %+v", s.Vendors)
	}
	if s.Vendors[0].KitName != "" {
		t.Error("update kept a field from the replaced vendor")
	}

	removeVendorCmd.Run(removeVendorCmd, []string{infoPath, "0"})
	s, err = primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Vendors) != 0 {
		t.Fatalf("vendors after remove = %+v", s.Vendors)
	}
}

func Test_targetOrganismSubcommands(t *testing.T) {
	infoPath := testBundleInfo(t)

	addOrganismCmd.Run(addOrganismCmd, []string{infoPath, "common_name=Mpox,ncbi_tax_id=10244"})
	s, err := primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.TargetOrganisms) != 2 || s.TargetOrganisms[1].NcbiTaxID != "10244" {
		t.Fatalf("organisms after add = %+v", s.TargetOrganisms)
	}

	removeOrganismCmd.Run(removeOrganismCmd, []string{infoPath, "1"})
	s, err = primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.TargetOrganisms) != 1 || s.TargetOrganisms[0].CommonName != "SARS-CoV-2" {
		t.Fatalf("organisms after remove = %+v", s.TargetOrganisms)
	}
}

func Test_updateContributorSubcommand(t *testing.T) {
	infoPath := testBundleInfo(t)

	updateContributorCmd.Run(updateContributorCmd, []string{infoPath, "0", "name=John Smith,email=john@example.org"})
	s, err := primaschema.ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Contributors) != 1 || s.Contributors[0].Name != "John Smith" || s.Contributors[0].Email != "john@example.org" {
		t.Fatalf("contributors after update = %+v", s.Contributors)
	}
}

func Test_parseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"12", 12, false},
		{"-1", 0, true},
		{"3abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIndex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func Test_vendorFromArg(t *testing.T) {
	v := vendorFromArg("Acme Oligos")
	if v.OrganisationName != "Acme Oligos" {
		t.Errorf("bare argument: got %+v", v)
	}

	v = vendorFromArg("organisation_name=Acme,home_page=https://example.org,kit_name=Kit 1")
	if v.OrganisationName != "Acme" || v.HomePage != "https://example.org" || v.KitName != "Kit 1" {
		t.Errorf("key=value argument: got %+v", v)
	}
}
