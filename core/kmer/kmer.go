// core/kmer/kmer.go
package kmer

import "github.com/pkg/errors"

// MaxK is the largest supported k-mer length: 31 bases fit a single
// uint64 word with two bits per base.
const MaxK = 31

// Code is a 2-bit packed k-mer (A=0 C=1 G=2 T=3), most significant
// base first.
type Code uint64

var ErrBadBase = errors.New("kmer: non-ACGT base")

// base2bit maps a byte to its 2-bit code; 4 marks an ambiguous base.
var base2bit [256]byte

func init() {
	for i := range base2bit {
		base2bit[i] = 4
	}
	base2bit['A'], base2bit['a'] = 0, 0
	base2bit['C'], base2bit['c'] = 1, 1
	base2bit['G'], base2bit['g'] = 2, 2
	base2bit['T'], base2bit['t'] = 3, 3
}

// ValidBase reports whether b is an unambiguous nucleotide (case-insensitive).
func ValidBase(b byte) bool { return base2bit[b] != 4 }

// ValidK reports whether k is a legal k-mer length: odd, 1..MaxK.
// Odd k rules out palindromic k-mers, which would be their own reverse
// complement and break canonical keying.
func ValidK(k int) bool { return k >= 1 && k <= MaxK && k%2 == 1 }

func mask(k int) Code { return Code(1)<<(2*uint(k)) - 1 }

// Encode packs the first k bases of seq. len(seq) must be >= k.
func Encode(seq []byte, k int) (Code, error) {
	var c Code
	for i := 0; i < k; i++ {
		b := base2bit[seq[i]]
		if b == 4 {
			return 0, errors.Wrapf(ErrBadBase, "%q at offset %d", seq[i], i)
		}
		c = c<<2 | Code(b)
	}
	return c, nil
}

// ShiftAdd drops the leading base of c and appends base, keeping the
// code k bases wide. base must be unambiguous.
func ShiftAdd(c Code, base byte, k int) Code {
	return (c<<2 | Code(base2bit[base])) & mask(k)
}

// ReverseComplement returns the code of the reverse complement strand.
func ReverseComplement(c Code, k int) Code {
	var rc Code
	for i := 0; i < k; i++ {
		rc = rc<<2 | ((c & 3) ^ 3)
		c >>= 2
	}
	return rc
}

// Canonical returns the smaller of c and its reverse complement. Index
// keys are canonical so lookups are strand-symmetric.
func Canonical(c Code, k int) Code {
	if rc := ReverseComplement(c, k); rc < c {
		return rc
	}
	return c
}

// NextRun finds the next maximal run of unambiguous bases in seq at or
// after position from that is long enough to hold a k-mer. Runs shorter
// than k are skipped. Returns ok=false when no such run remains.
func NextRun(seq []byte, from, k int) (start, end int, ok bool) {
	for i := from; i < len(seq); {
		for i < len(seq) && !ValidBase(seq[i]) {
			i++
		}
		start = i
		for i < len(seq) && ValidBase(seq[i]) {
			i++
		}
		if i-start >= k {
			return start, i, true
		}
	}
	return 0, 0, false
}
