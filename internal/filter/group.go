// internal/filter/group.go
package filter

import (
	"sync/atomic"

	"kreads-core/graph"
	"kreads-core/scan"
	"kreads/internal/output"
	"kreads/internal/seqio"
	"kreads/internal/stats"

	"github.com/pkg/errors"
)

// Mode says how an input specification's file(s) are read.
type Mode int

const (
	SingleEnd   Mode = iota // -1: one file, one read per unit
	SplitPair               // -2: two files in lockstep
	Interleaved             // -i: one file, two consecutive records per unit
)

// Paired reports whether the mode produces paired units and therefore
// split, numbered output files. Interleaved input gets split outputs,
// exactly like SplitPair.
func (m Mode) Paired() bool { return m != SingleEnd }

// Input is one `-1`/`-2`/`-i` specification after argument processing.
type Input struct {
	Mode         Mode
	File1, File2 string // File2 only for SplitPair
	Stem         string // output name stem
	Invert       bool   // print non-touching units instead
	FASTQ        bool   // output encoding
}

// Open returns the read source for the input's file(s).
func (in Input) Open() (seqio.Source, error) {
	switch in.Mode {
	case SplitPair:
		return seqio.Split(in.File1, in.File2)
	case Interleaved:
		return seqio.Interleaved(in.File1)
	default:
		return seqio.Single(in.File1)
	}
}

// Group is an Input bound to its runtime collaborators: the exclusive
// output destination, the shared read-only graph index, the shared
// statistics, and the global progress counter.
type Group struct {
	Input

	dest     *output.Destination
	index    *graph.Index
	stats    *stats.Loading
	progress *atomic.Uint64
}

func (g *Group) scanRead(r *seqio.Read) bool {
	res := scan.Scan(r.Seq, g.index)
	g.stats.AddScan(res)
	return res.Touches
}

// Classify is the worker callback, invoked once per unit on an
// arbitrary pool goroutine. The second read of a pair is only scanned
// when the first misses; a hit anywhere in the unit selects the whole
// unit, and a pair is written in one exclusive operation or not at all.
func (g *Group) Classify(p seqio.Pair) error {
	if p.Paired() && !g.Mode.Paired() {
		return errors.Errorf("paired unit on single-end input %s", g.File1)
	}

	touches := g.scanRead(p.R1) || (p.Paired() && g.scanRead(p.R2))

	if touches != g.Invert {
		var err error
		if p.Paired() {
			err = g.dest.WritePair(p.R1, p.R2)
		} else {
			err = g.dest.WriteSingle(p.R1)
		}
		if err != nil {
			return err
		}
	}

	if p.Paired() {
		g.stats.PEReads.Add(2)
	} else {
		g.stats.SEReads.Add(1)
	}
	g.progress.Add(1)
	return nil
}
