package primaschema

import (
	"fmt"
	"strings"
)

// InvalidSequenceError reports disallowed characters in a nucleotide sequence.
type InvalidSequenceError struct {
	Chars []string
}

func (e *InvalidSequenceError) Error() string {
	return fmt.Sprintf("found illegal characters in primer sequences: %s", strings.Join(e.Chars, ", "))
}

// MalformedTableError reports a coordinate file row with the wrong column count.
type MalformedTableError struct {
	Path    string
	Line    int
	Columns int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("%s:%d: expected 6 or 7 tab-separated fields, found %d", e.Path, e.Line, e.Columns)
}

// InvalidStrandError reports a strand value other than "+" or "-".
type InvalidStrandError struct {
	Name   string
	Strand string
}

func (e *InvalidStrandError) Error() string {
	return fmt.Sprintf("invalid strand %q for primer %s", e.Strand, e.Name)
}

// UnknownReferenceError reports a coordinate record whose chrom has no
// matching record in the reference file.
type UnknownReferenceError struct {
	Chrom string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("no reference sequence with id %s", e.Chrom)
}

// PathMismatchError reports disagreement between a bundle's directory path
// and its metadata.
type PathMismatchError struct {
	Field    string
	Metadata string
	Path     string
}

func (e *PathMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: info (%s) != path (%s)", e.Field, e.Metadata, e.Path)
}

// ChecksumMismatchError reports disagreement between a declared and a
// recomputed checksum.
type ChecksumMismatchError struct {
	Kind     string // e.g. "primer_file_sha256"
	Declared string
	Computed string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%s mismatch: computed (%s) != declared (%s)", e.Kind, e.Computed, e.Declared)
}

// ManifestConflictError reports a strict-mode add over an existing index entry
// whose file checksums disagree. The original entry is retained.
type ManifestConflictError struct {
	Path     string // name/ampliconSize/version
	Kind     string
	Original string
	Incoming string
}

func (e *ManifestConflictError) Error() string {
	return fmt.Sprintf(
		"%s has changed for %s: original (%s) -> new (%s), pass strict=false to allow",
		e.Kind, e.Path, e.Original, e.Incoming,
	)
}

// SchemaError reports a metadata record that fails structural validation.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
