// Package primaschema curates primer scheme bundles: it validates their
// internal consistency, computes content-addressable checksums for primer
// coordinate files and reference sequences, converts between coordinate file
// layouts, and maintains a manifest index of all known scheme versions.
package primaschema

import (
	"log"
	"os"
)

// Canonical file names inside a scheme-version directory.
const (
	MetadataFileName   = "info.json"
	LegacyMetadataName = "info.yml"
	PrimerFileName     = "primer.bed"
	SchemeBedFileName  = "scheme.bed"
	ReferenceFileName  = "reference.fasta"
	ReadmeFileName     = "README.md"
	ManifestFileName   = "index.json"
)

// Checksum namespace tags. A content checksum renders as
// "primaschema:bed:0123456789abcdef".
const (
	checksumNamespace = "primaschema"
	bedChecksumTag    = "bed"
	refChecksumTag    = "ref"
	digestLength      = 16 // hex chars kept from the sha256 digest
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)
