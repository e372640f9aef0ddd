package primaschema

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// HashBedRecords computes the content-addressable digest of a coordinate
// table. A 6-column table is backfilled against refs first, so a table and
// its backfilled 7-column equivalent always hash identically. The digest is
// independent of row order and sequence case.
func HashBedRecords(records []PrimerRecord, refs []RefRecord) (string, error) {
	if !HasSequences(records) {
		if len(refs) == 0 {
			return "", fmt.Errorf("cannot hash a 6-column table without a reference to backfill from")
		}
		backfilled, err := SchemeToPrimer(records, refs)
		if err != nil {
			return "", err
		}
		records = backfilled
	}

	seqs := make([]string, len(records))
	rows := make([]PrimerRecord, len(records))
	copy(rows, records)
	for i := range rows {
		rows[i].Seq = strings.ToUpper(strings.TrimSpace(rows[i].Seq))
		seqs[i] = rows[i].Seq
	}
	if err := validateAlphabet(seqs); err != nil {
		return "", err
	}

	rows, err := SortBed(rows)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	for _, r := range rows {
		row := strings.Join([]string{
			r.Chrom,
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			r.Pool,
			r.Strand,
			r.Seq,
		}, "\t")
		h.Write([]byte(row + "\n"))
	}

	digest := fmt.Sprintf("%x", h.Sum(nil))

	return fmt.Sprintf("%s:%s:%s", checksumNamespace, bedChecksumTag, digest[:digestLength]), nil
}

// HashBed computes the coordinate-table digest for a bed file, auto-detecting
// the layout. fastaPath may be empty for 7-column files; for 6-column files
// an empty fastaPath falls back to a reference.fasta next to the bed file.
func HashBed(bedPath, fastaPath string) (string, error) {
	records, err := ReadBed(bedPath)
	if err != nil {
		return "", err
	}

	var refs []RefRecord
	if !HasSequences(records) {
		if fastaPath == "" {
			fastaPath = filepath.Join(filepath.Dir(bedPath), ReferenceFileName)
		}
		if refs, err = ReadFasta(fastaPath); err != nil {
			return "", fmt.Errorf("failed to read reference for backfill: %w", err)
		}
	}

	return HashBedRecords(records, refs)
}

// HashRefRecords computes the content-addressable digest of a reference
// sequence set, independent of record order and sequence case.
func HashRefRecords(refs []RefRecord) (string, error) {
	if len(refs) == 0 {
		return "", fmt.Errorf("no reference sequences to hash")
	}

	sorted := make([]RefRecord, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var b strings.Builder
	for _, r := range sorted {
		b.WriteString(">" + r.ID + "\n" + strings.ToUpper(r.Seq) + "\n")
	}

	sum := sha256.Sum256([]byte(strings.TrimRight(b.String(), " \t\r\n")))
	digest := fmt.Sprintf("%x", sum)

	return fmt.Sprintf("%s:%s:%s", checksumNamespace, refChecksumTag, digest[:digestLength]), nil
}

// HashRef computes the reference digest for a FASTA file.
func HashRef(fastaPath string) (string, error) {
	refs, err := ReadFasta(fastaPath)
	if err != nil {
		return "", err
	}

	return HashRefRecords(refs)
}

// sha256File returns the full hex sha256 digest of a file's raw bytes.
func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
