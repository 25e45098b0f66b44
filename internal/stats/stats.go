// internal/stats/stats.go
package stats

import (
	"sync/atomic"

	"kreads-core/scan"
)

// Loading accumulates run-wide totals. All fields are updated with
// atomic adds so arbitrary worker goroutines may write concurrently;
// consistent reads are only meaningful once the worker pool has
// drained.
type Loading struct {
	BasesRead     atomic.Uint64 // every base of every read seen
	RunBases      atomic.Uint64 // bases inside valid runs
	KmersExamined atomic.Uint64 // index queries issued
	KmersNovel    atomic.Uint64 // queries that missed
	GoodReads     atomic.Uint64 // reads with at least one valid run
	BadReads      atomic.Uint64 // reads with none
	SEReads       atomic.Uint64 // single-end reads classified
	PEReads       atomic.Uint64 // paired-end reads classified (members, not pairs)
}

// AddScan folds one scanner result into the totals.
func (s *Loading) AddScan(r scan.Result) {
	s.BasesRead.Add(r.BasesRead)
	s.RunBases.Add(r.RunBases)
	s.KmersExamined.Add(r.Kmers)
	s.KmersNovel.Add(r.Novel)
	if r.Runs > 0 {
		s.GoodReads.Add(1)
	} else {
		s.BadReads.Add(1)
	}
}

// TotalReads is the number of read members classified so far.
func (s *Loading) TotalReads() uint64 {
	return s.SEReads.Load() + s.PEReads.Load()
}
