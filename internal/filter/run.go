// internal/filter/run.go
package filter

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"kreads-core/graph"
	"kreads/internal/output"
	"kreads/internal/pipeline"
	"kreads/internal/seqio"
	"kreads/internal/stats"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// MaxConcurrentInputs bounds how many input groups have their files
// open at once; groups beyond the limit wait for the previous batch to
// drain.
const MaxConcurrentInputs = 16

// Options controls one filtering run.
type Options struct {
	Threads int
	Quiet   bool
}

// Totals is what a run reports back.
type Totals struct {
	Printed uint64 // read members written across all destinations
	Reads   uint64 // read members classified (SE + PE members)
}

// Run opens every output destination up front (all or nothing),
// classifies every input group's reads against the index in batches,
// and closes the destinations. Startup failures roll back every file
// created in this run; failures after the first read keep whatever was
// already written.
func Run(ctx context.Context, inputs []Input, idx *graph.Index, opt Options) (Totals, error) {
	if len(inputs) == 0 {
		return Totals{}, errors.New("no sequence inputs given")
	}

	threads := effectiveThreads(opt.Threads)

	ld := &stats.Loading{}
	var progress atomic.Uint64

	groups := make([]*Group, len(inputs))
	for i, in := range inputs {
		groups[i] = &Group{Input: in, index: idx, stats: ld, progress: &progress}
	}

	if err := openAll(groups); err != nil {
		return Totals{}, err
	}

	if inputs[0].Invert {
		log.Info("printing reads that do not touch the graph")
	} else {
		log.Info("printing reads that touch the graph")
	}

	var pbs *mpb.Progress
	var bar *mpb.Bar
	if !opt.Quiet {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(groups)),
			mpb.PrependDecorators(
				decor.Name("filtering: "),
				decor.CountersNoUnit("%d / %d inputs"),
			),
			mpb.AppendDecorators(
				decor.Any(func(decor.Statistics) string {
					return fmt.Sprintf("%d units", progress.Load())
				}),
			),
		)
	}

	var runErr error
	for start := 0; start < len(groups) && runErr == nil; start += MaxConcurrentInputs {
		end := start + MaxConcurrentInputs
		if end > len(groups) {
			end = len(groups)
		}
		batch, err := openBatch(groups[start:end])
		if err != nil {
			runErr = err
			break
		}
		runErr = pipeline.RunPool(ctx, batch, threads, func(p seqio.Pair, g *Group) error {
			return g.Classify(p)
		})
		if bar != nil {
			bar.IncrBy(end - start)
		}
	}
	if bar != nil {
		bar.Abort(runErr != nil)
		pbs.Wait()
	}

	// Outputs written before a mid-run failure are kept: rollback is a
	// startup-only protocol.
	var totals Totals
	for _, g := range groups {
		totals.Printed += g.dest.Printed()
		if cerr := g.dest.Close(false); cerr != nil && runErr == nil {
			runErr = cerr
		}
	}
	totals.Reads = ld.TotalReads()
	if runErr != nil {
		return totals, runErr
	}

	pct := 0.0
	if totals.Reads > 0 {
		pct = 100 * float64(totals.Printed) / float64(totals.Reads)
	}
	log.Infof("total printed %d / %d (%.2f%%) reads", totals.Printed, totals.Reads, pct)
	log.Infof("bases read %d, in valid runs %d; kmers examined %d, novel %d; good reads %d, bad reads %d",
		ld.BasesRead.Load(), ld.RunBases.Load(),
		ld.KmersExamined.Load(), ld.KmersNovel.Load(),
		ld.GoodReads.Load(), ld.BadReads.Load())
	return totals, nil
}

// effectiveThreads resolves the worker count: zero or negative means
// one worker per CPU.
func effectiveThreads(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// openAll creates every group's destination, or none: the first
// failure closes and deletes everything created so far.
func openAll(groups []*Group) error {
	for i, g := range groups {
		d, err := output.Create(g.Stem, g.Mode.Paired(), g.FASTQ)
		if err != nil {
			for _, created := range groups[:i] {
				_ = created.dest.Close(true)
			}
			return err
		}
		g.dest = d
	}
	return nil
}

// openBatch opens the read sources of one batch of groups. A failure
// closes the sources already opened for the batch.
func openBatch(groups []*Group) ([]pipeline.Task[*Group], error) {
	tasks := make([]pipeline.Task[*Group], 0, len(groups))
	for _, g := range groups {
		src, err := g.Open()
		if err != nil {
			for _, t := range tasks {
				_ = t.Source.Close()
			}
			return nil, err
		}
		tasks = append(tasks, pipeline.Task[*Group]{Source: src, Group: g})
	}
	return tasks, nil
}
