package primaschema

import (
	"errors"
	"testing"
)

func Test_canonicalizeSeqs(t *testing.T) {
	tests := []struct {
		name    string
		seqs    []string
		want    string
		wantErr bool
	}{
		{
			"sorts and joins",
			[]string{"TTGA", "ACGT"},
			"ACGT,TTGA",
			false,
		},
		{
			"case is normalized before sorting",
			[]string{"ttga", "acgt"},
			"ACGT,TTGA",
			false,
		},
		{
			"order independent",
			[]string{"ACGT", "TTGA"},
			"ACGT,TTGA",
			false,
		},
		{
			"rejects ambiguity codes",
			[]string{"ACGN"},
			"",
			true,
		},
		{
			"rejects non-nucleotide characters",
			[]string{"ACG-T"},
			"",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := canonicalizeSeqs(tt.seqs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("canonicalizeSeqs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var seqErr *InvalidSequenceError
				if !errors.As(err, &seqErr) {
					t.Fatalf("expected InvalidSequenceError, got %T", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("canonicalizeSeqs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func Test_reverseComplement(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"ACG", "CGT"},
		{"ACGT", "ACGT"},
		{"AAAA", "TTTT"},
		{"GATTACA", "TGTAATC"},
	}

	for _, tt := range tests {
		got, err := reverseComplement(tt.seq)
		if err != nil {
			t.Fatalf("reverseComplement(%q) error = %v", tt.seq, err)
		}
		if got != tt.want {
			t.Errorf("reverseComplement(%q) = %q, want %q", tt.seq, got, tt.want)
		}
	}

	if _, err := reverseComplement("ACNT"); err == nil {
		t.Error("expected an error for a non-ACGT character")
	}
}

func Test_resolveSequence(t *testing.T) {
	refs := map[string]string{"chr1": "ACGTACGT"}

	tests := []struct {
		name   string
		record PrimerRecord
		want   string
	}{
		{
			"plus strand is the literal slice",
			PrimerRecord{Chrom: "chr1", Start: 0, End: 3, Name: "s_1_LEFT", Strand: "+"},
			"ACG",
		},
		{
			"minus strand is reverse complemented",
			PrimerRecord{Chrom: "chr1", Start: 0, End: 3, Name: "s_1_RIGHT", Strand: "-"},
			"CGT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSequence(tt.record, refs)
			if err != nil {
				t.Fatalf("resolveSequence() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveSequence() = %q, want %q", got, tt.want)
			}
		})
	}

	var refErr *UnknownReferenceError
	_, err := resolveSequence(PrimerRecord{Chrom: "chr2", Start: 0, End: 3, Name: "s_1_LEFT", Strand: "+"}, refs)
	if !errors.As(err, &refErr) {
		t.Errorf("expected UnknownReferenceError, got %v", err)
	}

	var strandErr *InvalidStrandError
	_, err = resolveSequence(PrimerRecord{Chrom: "chr1", Start: 0, End: 3, Name: "s_1_LEFT", Strand: "."}, refs)
	if !errors.As(err, &strandErr) {
		t.Errorf("expected InvalidStrandError, got %v", err)
	}

	outOfRange := PrimerRecord{Chrom: "chr1", Start: 4, End: 100, Name: "s_1_LEFT", Strand: "+"}
	if _, err := resolveSequence(outOfRange, refs); err == nil {
		t.Error("expected an error for an interval outside the reference")
	}
}
