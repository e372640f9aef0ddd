package primaschema

import (
	"fmt"
	"sort"
	"strings"
)

var complement = map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'a': 't', 't': 'a', 'c': 'g', 'g': 'c'}

// canonicalizeSeqs normalizes a set of primer sequences prior to hashing:
// uppercase, validate the {A,C,G,T} alphabet, sort lexicographically to
// remove dependence on row order, and join with a fixed delimiter.
func canonicalizeSeqs(seqs []string) (string, error) {
	upper := make([]string, len(seqs))
	for i, s := range seqs {
		upper[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	if err := validateAlphabet(upper); err != nil {
		return "", err
	}

	sort.Strings(upper)

	return strings.Join(upper, ","), nil
}

// validateAlphabet checks that the union of characters across all sequences
// is a subset of {A,C,G,T}.
func validateAlphabet(seqs []string) error {
	bad := make(map[rune]bool)
	for _, s := range seqs {
		for _, c := range s {
			switch c {
			case 'A', 'C', 'G', 'T':
			default:
				bad[c] = true
			}
		}
	}

	if len(bad) > 0 {
		var chars []string
		for c := range bad {
			chars = append(chars, string(c))
		}
		sort.Strings(chars)
		return &InvalidSequenceError{Chars: chars}
	}

	return nil
}

// reverseComplement returns the reverse complement of an ACGT sequence.
func reverseComplement(seq string) (string, error) {
	out := make([]byte, len(seq))
	for i := 0; i < len(seq); i++ {
		c, ok := complement[seq[len(seq)-1-i]]
		if !ok {
			return "", &InvalidSequenceError{Chars: []string{string(seq[len(seq)-1-i])}}
		}
		out[i] = c
	}

	return string(out), nil
}

// resolveSequence reconstructs a primer sequence from its coordinates by
// slicing the reference, reverse-complementing on the minus strand.
func resolveSequence(r PrimerRecord, refsByID map[string]string) (string, error) {
	ref, ok := refsByID[r.Chrom]
	if !ok {
		return "", &UnknownReferenceError{Chrom: r.Chrom}
	}

	if r.Start < 0 || r.End > len(ref) {
		return "", fmt.Errorf("primer %s interval [%d:%d) outside reference %s (length %d)", r.Name, r.Start, r.End, r.Chrom, len(ref))
	}

	slice := ref[r.Start:r.End]
	switch r.Strand {
	case "+":
		return slice, nil
	case "-":
		return reverseComplement(slice)
	default:
		return "", &InvalidStrandError{Name: r.Name, Strand: r.Strand}
	}
}
