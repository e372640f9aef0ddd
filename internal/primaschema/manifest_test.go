package primaschema

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testEntry(name string, size int, version string) ManifestEntry {
	s := testScheme()
	s.Name = name
	s.AmpliconSize = size
	s.Version = version
	s.PrimerFileSha256 = "aaaa"
	s.ReferenceFileSha256 = "bbbb"

	return NewManifestEntry(s, "")
}

func Test_NewManifestEntry(t *testing.T) {
	s := testScheme()
	s.PrimerFileSha256 = "aaaa"

	m := NewManifestEntry(s, "https://example.org/schemes")
	if got, want := m.PrimerFileURL, "https://example.org/schemes/sarscov2-test/400/v1.0.0/primer.bed"; got != want {
		t.Errorf("PrimerFileURL = %q, want %q", got, want)
	}
	if got, want := m.InfoFileURL, "https://example.org/schemes/sarscov2-test/400/v1.0.0/info.json"; got != want {
		t.Errorf("InfoFileURL = %q, want %q", got, want)
	}

	// no base URL leaves relative paths
	m = NewManifestEntry(s, "")
	if got, want := m.ReferenceFileURL, "sarscov2-test/400/v1.0.0/reference.fasta"; got != want {
		t.Errorf("ReferenceFileURL = %q, want %q", got, want)
	}

	if got, want := m.RelativePath(), "sarscov2-test/400/v1.0.0"; got != want {
		t.Errorf("RelativePath() = %q, want %q", got, want)
	}
}

func Test_IndexAddGetRemove(t *testing.T) {
	x := NewIndex()

	if err := x.Add(testEntry("artic", 400, "v1.0.0"), true); err != nil {
		t.Fatal(err)
	}
	if err := x.Add(testEntry("artic", 400, "v2.0.0"), true); err != nil {
		t.Fatal(err)
	}
	if err := x.Add(testEntry("artic", 2000, "v1.0.0"), true); err != nil {
		t.Fatal(err)
	}
	if x.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", x.Len())
	}

	if _, ok := x.Get("artic", 400, "v2.0.0"); !ok {
		t.Error("expected to find artic/400/v2.0.0")
	}
	if _, ok := x.Get("artic", 500, "v1.0.0"); ok {
		t.Error("found an entry that was never added")
	}

	if !x.Remove("artic", 400, "v2.0.0") {
		t.Error("Remove() reported a missing entry")
	}
	if x.Remove("artic", 400, "v2.0.0") {
		t.Error("Remove() reported success twice")
	}

	// removing the last version prunes the empty intermediate levels
	x.Remove("artic", 400, "v1.0.0")
	if _, ok := x.Schemes["artic"][400]; ok {
		t.Error("empty amplicon-size level was not pruned")
	}
	x.Remove("artic", 2000, "v1.0.0")
	if _, ok := x.Schemes["artic"]; ok {
		t.Error("empty name level was not pruned")
	}
}

func Test_IndexAddConflict(t *testing.T) {
	x := NewIndex()
	original := testEntry("artic", 400, "v1.0.0")
	if err := x.Add(original, true); err != nil {
		t.Fatal(err)
	}

	conflicting := testEntry("artic", 400, "v1.0.0")
	conflicting.PrimerFileSha256 = "cccc"

	// strict mode rejects the add and keeps the original entry
	err := x.Add(conflicting, true)
	var conflict *ManifestConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ManifestConflictError, got %v", err)
	}
	if conflict.Kind != "primer_file_sha256" {
		t.Errorf("got conflict kind %q, want %q", conflict.Kind, "primer_file_sha256")
	}
	kept, _ := x.Get("artic", 400, "v1.0.0")
	if kept.PrimerFileSha256 != original.PrimerFileSha256 {
		t.Error("strict conflict overwrote the original entry")
	}

	// permissive mode overwrites
	if err := x.Add(conflicting, false); err != nil {
		t.Fatal(err)
	}
	kept, _ = x.Get("artic", 400, "v1.0.0")
	if kept.PrimerFileSha256 != "cccc" {
		t.Error("permissive add did not overwrite")
	}

	// identical re-add is never a conflict
	if err := x.Add(conflicting, true); err != nil {
		t.Errorf("re-adding an identical entry errored: %v", err)
	}
}

func Test_IndexMarshalJSON_ordering(t *testing.T) {
	x := NewIndex()
	for _, size := range []int{1200, 20, 400} {
		if err := x.Add(testEntry("artic", size, "v1.0.0"), true); err != nil {
			t.Fatal(err)
		}
	}

	dat, err := x.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}

	// amplicon sizes must be ordered numerically, not lexically
	out := string(dat)
	i20 := strings.Index(out, `"20"`)
	i400 := strings.Index(out, `"400"`)
	i1200 := strings.Index(out, `"1200"`)
	if i20 < 0 || i400 < 0 || i1200 < 0 {
		t.Fatalf("missing size keys in %s", out)
	}
	if !(i20 < i400 && i400 < i1200) {
		t.Errorf("sizes not in numeric order: %s", out)
	}
}

func Test_IndexRoundTrip(t *testing.T) {
	x := NewIndex()
	if err := x.BuildFrom([]*Scheme{testScheme()}, "https://example.org", true); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), ManifestFileName)
	if err := WriteIndex(path, x); err != nil {
		t.Fatal(err)
	}

	loaded, err := ReadIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", loaded.Len())
	}

	got, ok := loaded.Get("sarscov2-test", 400, "v1.0.0")
	if !ok {
		t.Fatal("expected to find sarscov2-test/400/v1.0.0")
	}
	if got.InfoFileURL != "https://example.org/sarscov2-test/400/v1.0.0/info.json" {
		t.Errorf("InfoFileURL = %q", got.InfoFileURL)
	}
}
