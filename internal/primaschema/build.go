package primaschema

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// stageBundle writes the canonical form of a scheme bundle into dir:
// sorted 7-column primer.bed, companion 6-column scheme.bed,
// reference.fasta, recomputed checksums in info.json, and the README.
// The scheme's checksum fields are updated in place.
func stageBundle(dir string, s *Scheme, records []PrimerRecord, refs []RefRecord) error {
	if !HasSequences(records) {
		backfilled, err := SchemeToPrimer(records, refs)
		if err != nil {
			return err
		}
		records = backfilled
	}

	sorted, err := SortBed(records)
	if err != nil {
		return err
	}

	primerBed, err := WriteBed(sorted, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, PrimerFileName), []byte(primerBed), 0644); err != nil {
		return err
	}

	schemeBed, err := WriteBed(PrimerToScheme(sorted), false)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, SchemeBedFileName), []byte(schemeBed), 0644); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, ReferenceFileName), []byte(WriteFasta(refs)), 0644); err != nil {
		return err
	}

	if s.PrimerFileSha256, err = sha256File(filepath.Join(dir, PrimerFileName)); err != nil {
		return err
	}
	if s.ReferenceFileSha256, err = sha256File(filepath.Join(dir, ReferenceFileName)); err != nil {
		return err
	}
	if s.PrimerChecksum, err = HashBedRecords(sorted, refs); err != nil {
		return err
	}
	if s.ReferenceChecksum, err = HashRefRecords(refs); err != nil {
		return err
	}

	if err := WriteScheme(filepath.Join(dir, MetadataFileName), s); err != nil {
		return err
	}

	return WriteReadme(dir, s)
}

// publish moves a fully staged bundle into out/name/ampliconSize/version.
// The move happens only after every staging step has succeeded, so a failure
// never leaves a half-written bundle at the final path.
func publish(staged string, s *Scheme, out string) (string, error) {
	finalDir := filepath.Join(out, s.Name, strconv.Itoa(s.AmpliconSize), s.Version)
	if _, err := os.Stat(finalDir); err == nil {
		return "", fmt.Errorf("output directory already exists: %s", finalDir)
	}
	if err := os.MkdirAll(filepath.Dir(finalDir), 0755); err != nil {
		return "", err
	}

	if err := os.Rename(staged, finalDir); err != nil {
		// cross-device fallback: copy then remove
		if err := copyDir(staged, finalDir); err != nil {
			return "", err
		}
		os.RemoveAll(staged)
	}

	return finalDir, nil
}

// Build validates a bundle and publishes its canonical form under outDir.
// The README check is skipped: build generates the README itself.
func Build(schemeDir, outDir string, opts Options) (string, error) {
	infoPath, err := metadataPath(schemeDir)
	if err != nil {
		return "", err
	}
	s, err := ReadScheme(infoPath)
	if err != nil {
		return "", err
	}
	if err := validatePath(schemeDir, s); err != nil {
		return "", err
	}
	if err := validateChecksums(schemeDir, s, opts); err != nil {
		return "", err
	}

	records, err := ReadBed(filepath.Join(schemeDir, PrimerFileName))
	if err != nil {
		return "", err
	}
	refs, err := ReadFasta(filepath.Join(schemeDir, ReferenceFileName))
	if err != nil {
		return "", err
	}

	staged, err := os.MkdirTemp("", "primaschema-build-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(staged)

	if err := stageBundle(staged, s, records, refs); err != nil {
		return "", err
	}

	return publish(staged, s, outDir)
}

// BuildAll recursively builds every bundle under root, collecting per-bundle
// failures rather than aborting the batch.
func BuildAll(root, outDir string, opts Options) (built []string, failures []BundleFailure, err error) {
	dirs, err := FindBundles(root)
	if err != nil {
		return nil, nil, err
	}
	if len(dirs) == 0 {
		return nil, nil, fmt.Errorf("no scheme bundles found under %s", root)
	}

	for _, dir := range dirs {
		out, err := Build(dir, outDir, opts)
		if err != nil {
			failures = append(failures, BundleFailure{Dir: dir, Err: err})
			continue
		}
		built = append(built, out)
	}

	return built, failures, nil
}

// Create authors a brand-new bundle from a metadata record, a primer bed and
// a reference, publishing under schemesDir/name/ampliconSize/version.
// Refuses to overwrite an existing version directory.
func Create(s *Scheme, bedPath, refPath, schemesDir string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	records, err := ReadBed(bedPath)
	if err != nil {
		return "", err
	}
	refs, err := ReadFasta(refPath)
	if err != nil {
		return "", err
	}

	staged, err := os.MkdirTemp("", "primaschema-create-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(staged)

	if err := stageBundle(staged, s, records, refs); err != nil {
		return "", err
	}

	return publish(staged, s, schemesDir)
}

// Regenerate recomputes a published bundle's checksums and README,
// optionally rewriting primer.bed in canonical order first.
func Regenerate(infoPath string, reformatBed bool) error {
	s, err := ReadScheme(infoPath)
	if err != nil {
		return err
	}

	return regenerate(filepath.Dir(infoPath), s, reformatBed)
}

func regenerate(dir string, s *Scheme, reformatBed bool) error {
	records, err := ReadBed(filepath.Join(dir, PrimerFileName))
	if err != nil {
		return err
	}
	refs, err := ReadFasta(filepath.Join(dir, ReferenceFileName))
	if err != nil {
		return err
	}

	if reformatBed {
		sorted, err := SortBed(records)
		if err != nil {
			return err
		}
		bed, err := WriteBed(sorted, true)
		if err != nil {
			return err
		}
		if err := atomicWriteFile(filepath.Join(dir, PrimerFileName), []byte(bed)); err != nil {
			return err
		}
		records = sorted
	}

	if s.PrimerFileSha256, err = sha256File(filepath.Join(dir, PrimerFileName)); err != nil {
		return err
	}
	if s.ReferenceFileSha256, err = sha256File(filepath.Join(dir, ReferenceFileName)); err != nil {
		return err
	}
	if s.PrimerChecksum, err = HashBedRecords(records, refs); err != nil {
		return err
	}
	if s.ReferenceChecksum, err = HashRefRecords(refs); err != nil {
		return err
	}

	if err := WriteScheme(filepath.Join(dir, MetadataFileName), s); err != nil {
		return err
	}

	return WriteReadme(dir, s)
}

// ModifyScheme applies an edit to a bundle's metadata, then regenerates the
// checksums and the derived README so the bundle stays self-consistent.
func ModifyScheme(infoPath string, edit func(*Scheme) error) error {
	s, err := ReadScheme(infoPath)
	if err != nil {
		return err
	}

	if err := edit(s); err != nil {
		return err
	}

	return regenerate(filepath.Dir(infoPath), s, false)
}

func copyDir(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, e := range entries {
		from := filepath.Join(src, e.Name())
		to := filepath.Join(dst, e.Name())
		if e.IsDir() {
			if err := copyDir(from, to); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(from, to); err != nil {
			return err
		}
	}

	return nil
}
