package primaschema

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// PrimerRecord is one row of a primer coordinate table. Coordinates are
// zero-based and half-open. Seq is empty in the 6-column layout.
type PrimerRecord struct {
	Chrom  string
	Start  int
	End    int
	Name   string
	Pool   string
	Strand string
	Seq    string
}

// namingConvention extracts the amplicon number from a primer name.
// Conventions are tried in order; the first matching regexp wins and
// numberGroup is the capture group holding the amplicon number.
type namingConvention struct {
	name        string
	re          *regexp.Regexp
	numberGroup int
}

// The standard convention is {scheme}_{number}_{LEFT|RIGHT} with an optional
// trailing suffix (e.g. _alt1). legacy-eden covers one historical scheme
// named like {prefix}_A1F_0.
var namingConventions = []namingConvention{
	{"standard", regexp.MustCompile(`^[^_]+_(\d+)_(?:LEFT|RIGHT)(?:_.+)?$`), 1},
	{"legacy-eden", regexp.MustCompile(`^.+_[AB](\d+)[FR]_\d+$`), 1},
}

// ampliconNumber parses the amplicon number out of a primer name using the
// naming convention table.
func ampliconNumber(name string) (int, error) {
	for _, nc := range namingConventions {
		if m := nc.re.FindStringSubmatch(name); m != nil {
			return strconv.Atoi(m[nc.numberGroup])
		}
	}

	return 0, fmt.Errorf("primer name %q matches no known naming convention", name)
}

// ParseBed parses tab-separated coordinate rows. Every row must have exactly
// 6 fields (position-only) or exactly 7 (position plus sequence); the two
// layouts cannot be mixed within one file.
func ParseBed(path string, contents string) (records []PrimerRecord, err error) {
	columns := 0
	for i, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 6 && len(fields) != 7 {
			return nil, &MalformedTableError{Path: path, Line: i + 1, Columns: len(fields)}
		}
		if columns == 0 {
			columns = len(fields)
		} else if len(fields) != columns {
			return nil, &MalformedTableError{Path: path, Line: i + 1, Columns: len(fields)}
		}

		start, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: failed to parse start: %v", path, i+1, err)
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: failed to parse end: %v", path, i+1, err)
		}
		if start >= end {
			return nil, fmt.Errorf("%s:%d: start (%d) must be less than end (%d)", path, i+1, start, end)
		}

		r := PrimerRecord{
			// the effective chrom id is the first whitespace-delimited token
			Chrom:  firstToken(fields[0]),
			Start:  start,
			End:    end,
			Name:   fields[3],
			Pool:   fields[4],
			Strand: fields[5],
		}
		if len(fields) == 7 {
			r.Seq = strings.ToUpper(strings.TrimSpace(fields[6]))
		}
		records = append(records, r)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("failed to parse any primer records from %s", path)
	}

	return records, nil
}

// ReadBed reads and parses a coordinate file from the local FS.
func ReadBed(path string) ([]PrimerRecord, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseBed(path, string(dat))
}

// HasSequences reports whether every record carries a primer sequence,
// ie whether the table is in the 7-column layout.
func HasSequences(records []PrimerRecord) bool {
	for _, r := range records {
		if r.Seq == "" {
			return false
		}
	}

	return len(records) > 0
}

// SortBed sorts records into the canonical order used for serialization and
// hashing: chrom, amplicon number, start, end, pool, strand, sequence
// (absent sorts before present). Hash stability depends on this exact order.
func SortBed(records []PrimerRecord) ([]PrimerRecord, error) {
	numbers := make(map[string]int, len(records))
	for _, r := range records {
		if _, seen := numbers[r.Name]; seen {
			continue
		}
		n, err := ampliconNumber(r.Name)
		if err != nil {
			return nil, err
		}
		numbers[r.Name] = n
	}

	sorted := make([]PrimerRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if numbers[a.Name] != numbers[b.Name] {
			return numbers[a.Name] < numbers[b.Name]
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.Pool != b.Pool {
			return a.Pool < b.Pool
		}
		if a.Strand != b.Strand {
			return a.Strand < b.Strand
		}
		return a.Seq < b.Seq
	})

	return sorted, nil
}

// WriteBed serializes records back to tab-separated text. withSeq selects the
// 7-column layout; records missing a sequence error out in that case.
func WriteBed(records []PrimerRecord, withSeq bool) (string, error) {
	var b strings.Builder
	for _, r := range records {
		fields := []string{r.Chrom, strconv.Itoa(r.Start), strconv.Itoa(r.End), r.Name, r.Pool, r.Strand}
		if withSeq {
			if r.Seq == "" {
				return "", fmt.Errorf("primer %s has no sequence to write", r.Name)
			}
			fields = append(fields, r.Seq)
		}
		b.WriteString(strings.Join(fields, "\t"))
		b.WriteByte('\n')
	}

	return b.String(), nil
}

// PrimerToScheme converts a 7-column table to the 6-column layout by dropping
// the sequence. Lossy; reversible only by re-backfilling against a reference.
func PrimerToScheme(records []PrimerRecord) []PrimerRecord {
	out := make([]PrimerRecord, len(records))
	copy(out, records)
	for i := range out {
		out[i].Seq = ""
	}

	return out
}

// SchemeToPrimer converts a 6-column table to the 7-column layout by
// backfilling every sequence from the reference.
func SchemeToPrimer(records []PrimerRecord, refs []RefRecord) ([]PrimerRecord, error) {
	byID := refsByID(refs)
	out := make([]PrimerRecord, len(records))
	copy(out, records)
	for i := range out {
		seq, err := resolveSequence(out[i], byID)
		if err != nil {
			return nil, err
		}
		out[i].Seq = seq
	}

	return out, nil
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}

	return s
}
