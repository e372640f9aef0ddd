package primaschema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the version of the metadata schema written by this tool.
const SchemaVersion = "1.0.0"

// SchemeStatus is the lifecycle status of a primer scheme.
type SchemeStatus string

const (
	StatusDraft      SchemeStatus = "DRAFT"
	StatusTested     SchemeStatus = "TESTED"
	StatusValidated  SchemeStatus = "VALIDATED"
	StatusDeprecated SchemeStatus = "DEPRECATED"
	StatusWithdrawn  SchemeStatus = "WITHDRAWN"
)

var schemeStatuses = map[SchemeStatus]bool{
	StatusDraft:      true,
	StatusTested:     true,
	StatusValidated:  true,
	StatusDeprecated: true,
	StatusWithdrawn:  true,
}

// SchemeLicense is the license a scheme is distributed under.
type SchemeLicense string

// DefaultLicense is the default on newly authored schemes.
const DefaultLicense SchemeLicense = "CC-BY-SA-4.0"

var schemeLicenses = map[SchemeLicense]bool{
	DefaultLicense: true,
}

// Contributor is a person or organisation who contributed to scheme development.
type Contributor struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
	Orcid string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
}

// TargetOrganism names an organism a scheme targets, by common name and/or
// NCBI taxonomy id.
type TargetOrganism struct {
	CommonName string `json:"common_name,omitempty" yaml:"common_name,omitempty"`
	NcbiTaxID  string `json:"ncbi_tax_id,omitempty" yaml:"ncbi_tax_id,omitempty"`
}

// Vendor sells the primers described in a scheme, or a kit containing them.
type Vendor struct {
	OrganisationName string `json:"organisation_name" yaml:"organisation_name"`
	HomePage         string `json:"home_page,omitempty" yaml:"home_page,omitempty"`
	KitName          string `json:"kit_name,omitempty" yaml:"kit_name,omitempty"`
}

// Scheme is the canonical metadata record of one scheme-version.
type Scheme struct {
	SchemaVersion   string           `json:"schema_version" yaml:"schema_version"`
	Name            string           `json:"name" yaml:"name"`
	AmpliconSize    int              `json:"amplicon_size" yaml:"amplicon_size"`
	Version         string           `json:"version" yaml:"version"`
	Contributors    []Contributor    `json:"contributors" yaml:"contributors"`
	TargetOrganisms []TargetOrganism `json:"target_organisms" yaml:"target_organisms"`
	Status          SchemeStatus     `json:"status" yaml:"status"`
	License         SchemeLicense    `json:"license" yaml:"license"`
	Vendors         []Vendor         `json:"vendors,omitempty" yaml:"vendors,omitempty"`
	Tags            []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Citations       []string         `json:"citations,omitempty" yaml:"citations,omitempty"`
	Notes           []string         `json:"notes,omitempty" yaml:"notes,omitempty"`
	DerivedFrom     string           `json:"derived_from,omitempty" yaml:"derived_from,omitempty"`

	PrimerChecksum      string `json:"primer_checksum,omitempty" yaml:"primer_checksum,omitempty"`
	ReferenceChecksum   string `json:"reference_checksum,omitempty" yaml:"reference_checksum,omitempty"`
	PrimerFileSha256    string `json:"primer_file_sha256,omitempty" yaml:"primer_file_sha256,omitempty"`
	ReferenceFileSha256 string `json:"reference_file_sha256,omitempty" yaml:"reference_file_sha256,omitempty"`
}

var (
	namePattern    = regexp.MustCompile(`^[a-z0-9_.-]+$`)
	versionPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+(-[a-z0-9]+)?$`)
	emailPattern   = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,}$`)
	tagPattern     = regexp.MustCompile(`^[A-Z0-9_-]+$`)
)

// Validate performs the structural (schema-level) checks on a metadata
// record: required fields, enum membership and field patterns. Checksum
// semantics are the bundle validator's concern, not Validate's.
func (s *Scheme) Validate() error {
	if s.Name == "" || !namePattern.MatchString(s.Name) {
		return &SchemaError{Field: "name", Reason: fmt.Sprintf("%q does not match %s", s.Name, namePattern)}
	}
	if !versionPattern.MatchString(s.Version) {
		return &SchemaError{Field: "version", Reason: fmt.Sprintf("%q does not match %s", s.Version, versionPattern)}
	}
	if s.AmpliconSize < 1 {
		return &SchemaError{Field: "amplicon_size", Reason: fmt.Sprintf("%d is not a positive integer", s.AmpliconSize)}
	}
	if len(s.Contributors) == 0 {
		return &SchemaError{Field: "contributors", Reason: "at least one contributor is required"}
	}
	for _, c := range s.Contributors {
		if c.Name == "" {
			return &SchemaError{Field: "contributors", Reason: "contributor name is required"}
		}
		if c.Email != "" && !emailPattern.MatchString(c.Email) {
			return &SchemaError{Field: "contributors", Reason: fmt.Sprintf("invalid email %q", c.Email)}
		}
	}
	if len(s.TargetOrganisms) == 0 {
		return &SchemaError{Field: "target_organisms", Reason: "at least one target organism is required"}
	}
	for _, o := range s.TargetOrganisms {
		if o.CommonName == "" && o.NcbiTaxID == "" {
			return &SchemaError{Field: "target_organisms", Reason: "needs at least one of common_name or ncbi_tax_id"}
		}
	}
	if !schemeStatuses[s.Status] {
		return &SchemaError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s.Status)}
	}
	if s.License != "" && !schemeLicenses[s.License] {
		return &SchemaError{Field: "license", Reason: fmt.Sprintf("unsupported license %q", s.License)}
	}
	for _, v := range s.Vendors {
		if v.OrganisationName == "" {
			return &SchemaError{Field: "vendors", Reason: "vendor organisation_name is required"}
		}
	}
	for _, t := range s.Tags {
		if !tagPattern.MatchString(t) {
			return &SchemaError{Field: "tags", Reason: fmt.Sprintf("%q does not match %s", t, tagPattern)}
		}
	}
	if s.DerivedFrom != "" && !namePattern.MatchString(s.DerivedFrom) {
		return &SchemaError{Field: "derived_from", Reason: fmt.Sprintf("%q does not match %s", s.DerivedFrom, namePattern)}
	}

	return nil
}

// normalize fills defaults and uppercases enum-valued fields so that
// hand-written metadata with lowercase status values still validates.
func (s *Scheme) normalize() {
	if s.SchemaVersion == "" {
		s.SchemaVersion = SchemaVersion
	}
	if s.License == "" {
		s.License = DefaultLicense
	}
	s.Status = SchemeStatus(strings.ToUpper(string(s.Status)))
	s.License = SchemeLicense(strings.ToUpper(string(s.License)))
	for i, t := range s.Tags {
		s.Tags[i] = strings.ToUpper(t)
	}
}

// ReadScheme reads and validates a metadata record. JSON is the native
// format; a .yml/.yaml path is decoded as a YAML encoding of the same schema.
func ReadScheme(path string) (*Scheme, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := &Scheme{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(dat, s)
	default:
		err = json.Unmarshal(dat, s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata %s: %w", path, err)
	}

	s.normalize()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// WriteScheme writes a metadata record as indented JSON, atomically.
func WriteScheme(path string, s *Scheme) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dat, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}

	return atomicWriteFile(path, append(dat, '\n'))
}

// ReadBundleScheme reads the metadata record of a scheme-version directory.
func ReadBundleScheme(dir string) (*Scheme, error) {
	p, err := metadataPath(dir)
	if err != nil {
		return nil, err
	}

	return ReadScheme(p)
}

// metadataPath locates the metadata record in a scheme-version directory,
// preferring info.json over the legacy YAML name.
func metadataPath(dir string) (string, error) {
	for _, name := range []string{MetadataFileName, LegacyMetadataName} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no %s found in %s", MetadataFileName, dir)
}
