package primaschema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Options are the knobs shared by validation and build operations.
type Options struct {
	// IgnoreChecksums downgrades checksum mismatches from errors to
	// warnings. Default is strict.
	IgnoreChecksums bool

	// BaseURL is prepended to manifest file URLs.
	BaseURL string

	// Strict controls manifest merge conflict detection.
	Strict bool
}

// ValidateBundle checks one scheme-version directory: metadata schema
// validity, path consistency, raw file checksums, content checksums, and
// presence of the derived README. Read-only; re-run in full each invocation.
func ValidateBundle(dir string, opts Options) (*Scheme, error) {
	infoPath, err := metadataPath(dir)
	if err != nil {
		return nil, err
	}

	s, err := ReadScheme(infoPath)
	if err != nil {
		return nil, err
	}

	if err := validatePath(dir, s); err != nil {
		return nil, err
	}
	if err := validateChecksums(dir, s, opts); err != nil {
		return nil, err
	}
	if err := validateReadme(dir, s); err != nil {
		return nil, err
	}

	return s, nil
}

// validatePath checks that the last three path segments of the bundle
// directory equal name/ampliconSize/version.
func validatePath(dir string, s *Scheme) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	versionSeg := filepath.Base(abs)
	sizeSeg := filepath.Base(filepath.Dir(abs))
	nameSeg := filepath.Base(filepath.Dir(filepath.Dir(abs)))

	if s.Version != versionSeg {
		return &PathMismatchError{Field: "version", Metadata: s.Version, Path: versionSeg}
	}
	if strconv.Itoa(s.AmpliconSize) != sizeSeg {
		return &PathMismatchError{Field: "amplicon_size", Metadata: strconv.Itoa(s.AmpliconSize), Path: sizeSeg}
	}
	if s.Name != nameSeg {
		return &PathMismatchError{Field: "name", Metadata: s.Name, Path: nameSeg}
	}

	return nil
}

// validateChecksums recomputes the raw file digests and the content digests
// and compares them to the declared values. Mismatches are fatal unless
// IgnoreChecksums downgrades them to warnings.
func validateChecksums(dir string, s *Scheme, opts Options) error {
	check := func(kind, declared, computed string) error {
		if declared == computed {
			return nil
		}
		err := &ChecksumMismatchError{Kind: kind, Declared: declared, Computed: computed}
		if opts.IgnoreChecksums {
			stderr.Printf("warning: %s: %v", dir, err)
			return nil
		}
		return err
	}

	primerPath := filepath.Join(dir, PrimerFileName)
	refPath := filepath.Join(dir, ReferenceFileName)

	primerSha, err := sha256File(primerPath)
	if err != nil {
		return err
	}
	if err := check("primer_file_sha256", s.PrimerFileSha256, primerSha); err != nil {
		return err
	}

	refSha, err := sha256File(refPath)
	if err != nil {
		return err
	}
	if err := check("reference_file_sha256", s.ReferenceFileSha256, refSha); err != nil {
		return err
	}

	primerChecksum, err := HashBed(primerPath, refPath)
	if err != nil {
		return err
	}
	if err := check("primer_checksum", s.PrimerChecksum, primerChecksum); err != nil {
		return err
	}

	refChecksum, err := HashRef(refPath)
	if err != nil {
		return err
	}
	if err := check("reference_checksum", s.ReferenceChecksum, refChecksum); err != nil {
		return err
	}

	return nil
}

// validateReadme checks that the derived README exists and names the
// scheme's name, amplicon size and version.
func validateReadme(dir string, s *Scheme) error {
	readmePath := filepath.Join(dir, ReadmeFileName)
	dat, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("missing derived documentation: %w", err)
	}

	readme := string(dat)
	for _, want := range []string{s.Name, strconv.Itoa(s.AmpliconSize), s.Version} {
		if !strings.Contains(readme, want) {
			return fmt.Errorf("%s does not mention %q", readmePath, want)
		}
	}

	return nil
}

// FindBundles walks root for scheme-version directories, identified by their
// metadata file. Results are in walk (lexical) order.
func FindBundles(root string) (dirs []string, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && (d.Name() == MetadataFileName || d.Name() == LegacyMetadataName) {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})

	return dirs, err
}

// BundleFailure pairs a bundle directory with the error it failed with.
type BundleFailure struct {
	Dir string
	Err error
}

// ValidateAll recursively validates every bundle under root. One bundle's
// failure does not abort the batch; failures are collected and returned
// alongside the schemes that passed.
func ValidateAll(root string, opts Options) (schemes []*Scheme, failures []BundleFailure, err error) {
	dirs, err := FindBundles(root)
	if err != nil {
		return nil, nil, err
	}
	if len(dirs) == 0 {
		return nil, nil, fmt.Errorf("no scheme bundles found under %s", root)
	}

	for _, dir := range dirs {
		s, err := ValidateBundle(dir, opts)
		if err != nil {
			failures = append(failures, BundleFailure{Dir: dir, Err: err})
			continue
		}
		schemes = append(schemes, s)
	}

	return schemes, failures, nil
}
