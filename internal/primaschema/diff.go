package primaschema

import "fmt"

// BedDiff is one coordinate record found in only one of two compared tables,
// labelled with the table it came from.
type BedDiff struct {
	Origin string
	Record PrimerRecord
}

// DiffBed computes the symmetric difference of two coordinate tables: the
// records of each table whose counterpart is absent from the other. With
// onlyPositions, records are matched on (chrom, start, end) alone, so renamed
// or re-pooled primers at identical coordinates do not show up.
func DiffBed(aName string, a []PrimerRecord, bName string, b []PrimerRecord, onlyPositions bool) []BedDiff {
	key := func(r PrimerRecord) string {
		if onlyPositions {
			return fmt.Sprintf("%s\t%d\t%d", r.Chrom, r.Start, r.End)
		}
		return fmt.Sprintf("%s\t%d\t%d\t%s\t%s\t%s\t%s", r.Chrom, r.Start, r.End, r.Name, r.Pool, r.Strand, r.Seq)
	}

	inA := make(map[string]bool, len(a))
	for _, r := range a {
		inA[key(r)] = true
	}
	inB := make(map[string]bool, len(b))
	for _, r := range b {
		inB[key(r)] = true
	}

	var diffs []BedDiff
	for _, r := range a {
		if !inB[key(r)] {
			diffs = append(diffs, BedDiff{Origin: aName, Record: r})
		}
	}
	for _, r := range b {
		if !inA[key(r)] {
			diffs = append(diffs, BedDiff{Origin: bName, Record: r})
		}
	}

	return diffs
}
