package primaschema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Interval is a zero-based half-open genomic interval.
type Interval struct {
	Start int
	End   int
}

// AmpliconGroup is the set of primers sharing a (chrom, amplicon number) key.
type AmpliconGroup struct {
	Chrom   string
	Number  int
	Primers []PrimerRecord
}

// Span is the amplicon's interval: the union of its primers' intervals,
// min start from the plus-strand members, max end from the minus-strand ones.
func (g *AmpliconGroup) Span() Interval {
	span := Interval{Start: -1, End: -1}
	for _, p := range g.Primers {
		if p.Strand == "+" && (span.Start == -1 || p.Start < span.Start) {
			span.Start = p.Start
		}
		if p.Strand == "-" && p.End > span.End {
			span.End = p.End
		}
	}

	return span
}

// GroupAmplicons groups records by (chrom, amplicon number), ordered by
// chrom then number.
func GroupAmplicons(records []PrimerRecord) ([]AmpliconGroup, error) {
	type key struct {
		chrom  string
		number int
	}

	byKey := map[key]*AmpliconGroup{}
	var order []key
	for _, r := range records {
		n, err := ampliconNumber(r.Name)
		if err != nil {
			return nil, err
		}
		k := key{r.Chrom, n}
		g, ok := byKey[k]
		if !ok {
			g = &AmpliconGroup{Chrom: r.Chrom, Number: n}
			byKey[k] = g
			order = append(order, k)
		}
		g.Primers = append(g.Primers, r)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].chrom != order[j].chrom {
			return order[i].chrom < order[j].chrom
		}
		return order[i].number < order[j].number
	})

	groups := make([]AmpliconGroup, 0, len(order))
	for _, k := range order {
		groups = append(groups, *byKey[k])
	}

	return groups, nil
}

// AmpliconIntervals renders "chrom\tstart\tend\tnumber" lines for every
// amplicon in a coordinate table.
func AmpliconIntervals(records []PrimerRecord) ([]string, error) {
	groups, err := GroupAmplicons(records)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		span := g.Span()
		if span.Start == -1 || span.End == -1 {
			return nil, fmt.Errorf("amplicon %d on %s is missing a LEFT or RIGHT primer", g.Number, g.Chrom)
		}
		lines = append(lines, fmt.Sprintf("%s\t%d\t%d\t%d", g.Chrom, span.Start, span.End, g.Number))
	}

	return lines, nil
}

// DiscordantPrimer is a stored primer sequence that disagrees with the
// sequence resolved from the reference at its coordinates.
type DiscordantPrimer struct {
	Record   PrimerRecord
	Resolved string
}

// DiscordantPrimers compares each stored 7-column sequence against the
// reference-resolved one and returns the mismatches.
func DiscordantPrimers(schemeDir string) ([]DiscordantPrimer, error) {
	records, err := ReadBed(filepath.Join(schemeDir, PrimerFileName))
	if err != nil {
		return nil, err
	}
	if !HasSequences(records) {
		return nil, fmt.Errorf("%s has no stored sequences to compare", PrimerFileName)
	}
	refs, err := ReadFasta(filepath.Join(schemeDir, ReferenceFileName))
	if err != nil {
		return nil, err
	}

	byID := refsByID(refs)
	var discordant []DiscordantPrimer
	for _, r := range records {
		resolved, err := resolveSequence(r, byID)
		if err != nil {
			return nil, err
		}
		resolved = strings.ToUpper(resolved)
		if resolved != r.Seq {
			discordant = append(discordant, DiscordantPrimer{Record: r, Resolved: resolved})
		}
	}

	return discordant, nil
}

// Subset writes a single-chromosome scheme definition (filtered primer.bed
// plus its reference record) under outDir.
func Subset(schemeDir, chrom, outDir string) error {
	records, err := ReadBed(filepath.Join(schemeDir, PrimerFileName))
	if err != nil {
		return err
	}
	refs, err := ReadFasta(filepath.Join(schemeDir, ReferenceFileName))
	if err != nil {
		return err
	}

	var kept []PrimerRecord
	for _, r := range records {
		if r.Chrom == chrom {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("no primer records for chromosome %s", chrom)
	}

	var keptRefs []RefRecord
	for _, r := range refs {
		if r.ID == chrom {
			keptRefs = append(keptRefs, r)
		}
	}
	if len(keptRefs) == 0 {
		return &UnknownReferenceError{Chrom: chrom}
	}

	sorted, err := SortBed(kept)
	if err != nil {
		return err
	}
	bed, err := WriteBed(sorted, HasSequences(sorted))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if err := atomicWriteFile(filepath.Join(outDir, PrimerFileName), []byte(bed)); err != nil {
		return err
	}

	return atomicWriteFile(filepath.Join(outDir, ReferenceFileName), []byte(WriteFasta(keptRefs)))
}
