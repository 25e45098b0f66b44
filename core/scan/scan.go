// core/scan/scan.go
package scan

import "kreads-core/kmer"

// Membership is the read-only graph query the scanner needs. A loaded
// graph.Index satisfies it; tests substitute small fakes.
type Membership interface {
	K() int
	Has(kmer.Code) bool
}

// Result is the outcome of scanning one read.
type Result struct {
	Touches bool // at least one k-mer of the read is in the index

	BasesRead uint64 // full read length, counted even on early exit
	RunBases  uint64 // bases inside valid runs visited before the exit
	Kmers     uint64 // k-mer queries issued, the hit included
	Novel     uint64 // queries that missed
	Runs      uint64 // valid runs visited; 0 marks a "bad" read
}

// Scan decomposes seq into maximal unambiguous runs of length >= k and
// queries the index for each run's k-mers, deriving successive k-mers
// by rolling update. The first hit stops the scan: later k-mers and
// runs are neither queried nor counted.
func Scan(seq []byte, idx Membership) Result {
	k := idx.K()
	res := Result{BasesRead: uint64(len(seq))}
	if len(seq) < k {
		return res
	}

	for from := 0; ; {
		start, end, ok := kmer.NextRun(seq, from, k)
		if !ok {
			break
		}
		res.Runs++
		res.RunBases += uint64(end - start)

		c, err := kmer.Encode(seq[start:], k)
		if err != nil {
			break // unreachable: runs contain only unambiguous bases
		}
		res.Kmers++
		if idx.Has(c) {
			res.Touches = true
			break
		}
		for i := start + k; i < end; i++ {
			c = kmer.ShiftAdd(c, seq[i], k)
			res.Kmers++
			if idx.Has(c) {
				res.Touches = true
				break
			}
		}
		if res.Touches {
			break
		}
		from = end
	}

	res.Novel = res.Kmers
	if res.Touches {
		res.Novel--
	}
	return res
}
