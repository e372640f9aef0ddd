package primaschema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testScheme() *Scheme {
	return &Scheme{
		SchemaVersion: SchemaVersion,
		Name:          "sarscov2-test",
		AmpliconSize:  400,
		Version:       "v1.0.0",
		Contributors: []Contributor{
			{Name: "Jane Doe", Email: "jane@example.org"},
		},
		TargetOrganisms: []TargetOrganism{
			{CommonName: "SARS-CoV-2", NcbiTaxID: "2697049"},
		},
		Status:  StatusDraft,
		License: DefaultLicense,
	}
}

func Test_SchemeValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Scheme)
		wantField string
	}{
		{"valid record", func(s *Scheme) {}, ""},
		{"uppercase name", func(s *Scheme) { s.Name = "SarsCov2" }, "name"},
		{"empty name", func(s *Scheme) { s.Name = "" }, "name"},
		{"version missing v prefix", func(s *Scheme) { s.Version = "1.0.0" }, "version"},
		{"version with prerelease ok", func(s *Scheme) { s.Version = "v2.0.0-alpha1" }, ""},
		{"zero amplicon size", func(s *Scheme) { s.AmpliconSize = 0 }, "amplicon_size"},
		{"no contributors", func(s *Scheme) { s.Contributors = nil }, "contributors"},
		{"contributor bad email", func(s *Scheme) { s.Contributors[0].Email = "not-an-email" }, "contributors"},
		{"no target organisms", func(s *Scheme) { s.TargetOrganisms = nil }, "target_organisms"},
		{"empty target organism", func(s *Scheme) { s.TargetOrganisms = []TargetOrganism{{}} }, "target_organisms"},
		{"unknown status", func(s *Scheme) { s.Status = "RETIRED" }, "status"},
		{"unsupported license", func(s *Scheme) { s.License = "MIT" }, "license"},
		{"vendor without name", func(s *Scheme) { s.Vendors = []Vendor{{HomePage: "https://example.org"}} }, "vendors"},
		{"lowercase tag", func(s *Scheme) { s.Tags = []string{"wastewater"} }, "tags"},
		{"uppercase tag ok", func(s *Scheme) { s.Tags = []string{"WASTEWATER"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testScheme()
			tt.mutate(s)

			err := s.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}

			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected SchemaError, got %v", err)
			}
			if schemaErr.Field != tt.wantField {
				t.Errorf("got field %q, want %q", schemaErr.Field, tt.wantField)
			}
		})
	}
}

func Test_ReadScheme_json(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, MetadataFileName)

	if err := WriteScheme(path, testScheme()); err != nil {
		t.Fatal(err)
	}

	s, err := ReadScheme(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "sarscov2-test" || s.AmpliconSize != 400 || s.Version != "v1.0.0" {
		t.Errorf("round trip lost fields: %+v", s)
	}
}

func Test_ReadScheme_yaml(t *testing.T) {
	contents := `name: sarscov2-test
amplicon_size: 400
version: v1.0.0
contributors:
  - name: Jane Doe
target_organisms:
  - common_name: SARS-CoV-2
status: draft
`
	path := filepath.Join(t.TempDir(), LegacyMetadataName)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := ReadScheme(path)
	if err != nil {
		t.Fatal(err)
	}

	// normalize fills defaults and uppercases enums
	if s.Status != StatusDraft {
		t.Errorf("got status %q, want %q", s.Status, StatusDraft)
	}
	if s.License != DefaultLicense {
		t.Errorf("got license %q, want %q", s.License, DefaultLicense)
	}
	if s.SchemaVersion != SchemaVersion {
		t.Errorf("got schema_version %q, want %q", s.SchemaVersion, SchemaVersion)
	}
}

func Test_ReadScheme_invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), MetadataFileName)
	if err := os.WriteFile(path, []byte(`{"name": "x"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadScheme(path); err == nil {
		t.Error("expected an error reading an incomplete record")
	}
}

func Test_WriteScheme_invalid(t *testing.T) {
	s := testScheme()
	s.Contributors = nil

	if err := WriteScheme(filepath.Join(t.TempDir(), MetadataFileName), s); err == nil {
		t.Error("expected an error writing an invalid record")
	}
}

func Test_metadataPath(t *testing.T) {
	dir := t.TempDir()

	if _, err := metadataPath(dir); err == nil {
		t.Error("expected an error for a directory without metadata")
	}

	// legacy name found when it is the only one
	if err := os.WriteFile(filepath.Join(dir, LegacyMetadataName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err := metadataPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p) != LegacyMetadataName {
		t.Errorf("got %s, want %s", filepath.Base(p), LegacyMetadataName)
	}

	// info.json preferred over the legacy name
	if err := os.WriteFile(filepath.Join(dir, MetadataFileName), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	p, err = metadataPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p) != MetadataFileName {
		t.Errorf("got %s, want %s", filepath.Base(p), MetadataFileName)
	}
}
