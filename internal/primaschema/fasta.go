package primaschema

import (
	"fmt"
	"os"
	"strings"
)

// RefRecord is one reference sequence from a FASTA file. ID is the first
// whitespace-delimited token of the raw header line.
type RefRecord struct {
	ID  string
	Seq string
}

// ParseFasta parses FASTA contents to reference records, preserving file
// order. Duplicate ids are an error.
func ParseFasta(path, contents string) (refs []RefRecord, err error) {
	seen := make(map[string]bool)
	var current *RefRecord
	var seq strings.Builder

	flush := func() {
		if current != nil {
			current.Seq = seq.String()
			refs = append(refs, *current)
			seq.Reset()
		}
	}

	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, ">") {
			flush()
			id := firstToken(strings.TrimSpace(line[1:]))
			if id == "" {
				return nil, fmt.Errorf("%s: empty fasta header", path)
			}
			if seen[id] {
				return nil, fmt.Errorf("%s: duplicate fasta id %s", path, id)
			}
			seen[id] = true
			current = &RefRecord{ID: id}
		} else if current != nil {
			seq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if len(refs) == 0 {
		return nil, fmt.Errorf("failed to parse any fasta records from %s", path)
	}

	return refs, nil
}

// ReadFasta reads and parses a FASTA file from the local FS.
func ReadFasta(path string) ([]RefRecord, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseFasta(path, string(dat))
}

// WriteFasta serializes reference records, 60 bases per sequence line.
func WriteFasta(refs []RefRecord) string {
	var b strings.Builder
	for _, r := range refs {
		b.WriteString(">" + r.ID + "\n")
		for i := 0; i < len(r.Seq); i += 60 {
			end := i + 60
			if end > len(r.Seq) {
				end = len(r.Seq)
			}
			b.WriteString(r.Seq[i:end] + "\n")
		}
	}

	return b.String()
}

func refsByID(refs []RefRecord) map[string]string {
	byID := make(map[string]string, len(refs))
	for _, r := range refs {
		byID[r.ID] = r.Seq
	}

	return byID
}
