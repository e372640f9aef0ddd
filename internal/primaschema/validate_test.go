package primaschema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func Test_ValidateBundle_pathMismatch(t *testing.T) {
	root := t.TempDir()
	dir := createTestBundle(t, root)

	// relocate the bundle so the version segment disagrees with the metadata
	wrong := filepath.Join(root, "sarscov2-test", "400", "v9.9.9")
	if err := os.Rename(dir, wrong); err != nil {
		t.Fatal(err)
	}

	_, err := ValidateBundle(wrong, Options{})
	var pathErr *PathMismatchError
	if !errors.As(err, &pathErr) {
		t.Fatalf("expected PathMismatchError, got %v", err)
	}
	if pathErr.Field != "version" {
		t.Errorf("got field %q, want %q", pathErr.Field, "version")
	}
}

func Test_ValidateBundle_checksumMismatch(t *testing.T) {
	root := t.TempDir()
	dir := createTestBundle(t, root)

	// append a blank line: the raw digest changes but the content digest
	// of the parsed rows does not
	f, err := os.OpenFile(filepath.Join(dir, PrimerFileName), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	_, err = ValidateBundle(dir, Options{})
	var sumErr *ChecksumMismatchError
	if !errors.As(err, &sumErr) {
		t.Fatalf("expected ChecksumMismatchError, got %v", err)
	}
	if sumErr.Kind != "primer_file_sha256" {
		t.Errorf("got kind %q, want %q", sumErr.Kind, "primer_file_sha256")
	}

	// the mismatch downgrades to a warning when checksums are ignored
	if _, err := ValidateBundle(dir, Options{IgnoreChecksums: true}); err != nil {
		t.Errorf("ValidateBundle(IgnoreChecksums) error = %v", err)
	}
}

func Test_ValidateBundle_contentChecksumMismatch(t *testing.T) {
	root := t.TempDir()
	dir := createTestBundle(t, root)

	// declare a stale content digest but a correct raw digest
	infoPath := filepath.Join(dir, MetadataFileName)
	s, err := ReadScheme(infoPath)
	if err != nil {
		t.Fatal(err)
	}
	s.PrimerChecksum = "primaschema:bed:0000000000000000"
	if err := WriteScheme(infoPath, s); err != nil {
		t.Fatal(err)
	}

	_, err = ValidateBundle(dir, Options{IgnoreChecksums: false})
	var sumErr *ChecksumMismatchError
	if !errors.As(err, &sumErr) {
		t.Fatalf("expected ChecksumMismatchError, got %v", err)
	}
}

func Test_ValidateBundle_missingReadme(t *testing.T) {
	root := t.TempDir()
	dir := createTestBundle(t, root)

	if err := os.Remove(filepath.Join(dir, ReadmeFileName)); err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateBundle(dir, Options{}); err == nil {
		t.Error("expected an error for a bundle without a README")
	}
}

func Test_FindBundles(t *testing.T) {
	root := t.TempDir()
	createTestBundle(t, root)

	dirs, err := FindBundles(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) != 1 {
		t.Fatalf("found %d bundles, want 1", len(dirs))
	}
	if filepath.Base(dirs[0]) != "v1.0.0" {
		t.Errorf("found %s, want a version directory", dirs[0])
	}
}

func Test_ValidateAll(t *testing.T) {
	root := t.TempDir()
	dir := createTestBundle(t, root)

	schemes, failures, err := ValidateAll(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	if len(schemes) != 1 || schemes[0].Name != "sarscov2-test" {
		t.Fatalf("got schemes %+v", schemes)
	}

	// one broken bundle is collected as a failure, not a batch abort
	if err := os.Remove(filepath.Join(dir, ReadmeFileName)); err != nil {
		t.Fatal(err)
	}
	schemes, failures, err = ValidateAll(root, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(schemes) != 0 || len(failures) != 1 {
		t.Errorf("got %d schemes and %d failures, want 0 and 1", len(schemes), len(failures))
	}

	if _, _, err := ValidateAll(t.TempDir(), Options{}); err == nil {
		t.Error("expected an error for a root with no bundles")
	}
}
