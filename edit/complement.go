package edit

import "fmt"

// complement maps each supported nucleotide to its pair; zero means unsupported.
var complement = [256]byte{
	'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C', 'N': 'N',
	'a': 't', 't': 'a', 'c': 'g', 'g': 'c', 'n': 'n',
}

// Complement returns the complement of b and whether b is in the alphabet.
func Complement(b byte) (byte, bool) {
	c := complement[b]
	return c, c != 0
}

// ReverseComplement returns the reverse complement of seq, preserving case.
// Symbols outside {A,C,G,T,N} in either case yield ErrInvalidAlphabet.
func ReverseComplement(seq []byte) ([]byte, error) {
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		b := seq[n-1-i]
		c, ok := Complement(b)
		if !ok {
			return nil, fmt.Errorf("edit: %q at offset %d: %w", b, n-1-i, ErrInvalidAlphabet)
		}
		out[i] = c
	}
	return out, nil
}
