// core/graph/index.go
package graph

import (
	"kreads-core/kmer"

	"github.com/pkg/errors"
)

// Index is a set of canonical k-mer codes with a fixed k. It is built
// or loaded once and then shared read-only across worker goroutines;
// concurrent Has calls need no locking.
type Index struct {
	k    int
	keys map[kmer.Code]struct{}
}

// New returns an empty index for k-mers of length k.
func New(k int) (*Index, error) {
	if !kmer.ValidK(k) {
		return nil, errors.Errorf("graph: invalid kmer length %d (need odd, 1..%d)", k, kmer.MaxK)
	}
	return &Index{k: k, keys: make(map[kmer.Code]struct{})}, nil
}

// K returns the k-mer length of the index.
func (x *Index) K() int { return x.k }

// Len returns the number of distinct canonical k-mers stored.
func (x *Index) Len() int { return len(x.keys) }

// Add inserts a k-mer; the canonical key is stored so that Has finds
// the k-mer on either strand.
func (x *Index) Add(c kmer.Code) {
	x.keys[kmer.Canonical(c, x.k)] = struct{}{}
}

// Has reports whether the k-mer, on either strand, is in the index.
func (x *Index) Has(c kmer.Code) bool {
	_, ok := x.keys[kmer.Canonical(c, x.k)]
	return ok
}

// AddSeq inserts every k-mer of every valid run of seq, deriving
// successive k-mers by rolling update.
func (x *Index) AddSeq(seq []byte) {
	k := x.k
	for from := 0; ; {
		start, end, ok := kmer.NextRun(seq, from, k)
		if !ok {
			return
		}
		c, err := kmer.Encode(seq[start:], k)
		if err != nil {
			return // unreachable: NextRun yields unambiguous runs
		}
		x.Add(c)
		for i := start + k; i < end; i++ {
			c = kmer.ShiftAdd(c, seq[i], k)
			x.Add(c)
		}
		from = end
	}
}

// Absorb merges all keys of other into x. The k-mer lengths must match.
func (x *Index) Absorb(other *Index) error {
	if other.k != x.k {
		return errors.Errorf("graph: cannot merge k=%d index into k=%d index", other.k, x.k)
	}
	for c := range other.keys {
		x.keys[c] = struct{}{}
	}
	return nil
}
