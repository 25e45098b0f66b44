// internal/stats/stats_test.go
package stats

import (
	"sync"
	"testing"

	"kreads-core/scan"

	"github.com/stretchr/testify/require"
)

func TestAddScanGoodBad(t *testing.T) {
	var s Loading
	s.AddScan(scan.Result{BasesRead: 10, RunBases: 8, Kmers: 4, Novel: 3, Runs: 1, Touches: true})
	s.AddScan(scan.Result{BasesRead: 6}) // bad read: no runs
	require.Equal(t, uint64(16), s.BasesRead.Load())
	require.Equal(t, uint64(8), s.RunBases.Load())
	require.Equal(t, uint64(4), s.KmersExamined.Load())
	require.Equal(t, uint64(3), s.KmersNovel.Load())
	require.Equal(t, uint64(1), s.GoodReads.Load())
	require.Equal(t, uint64(1), s.BadReads.Load())
}

func TestConcurrentAddsAreExact(t *testing.T) {
	var s Loading
	const workers, perWorker = 8, 1000
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.AddScan(scan.Result{BasesRead: 1, Kmers: 2, Novel: 2, Runs: 1})
				s.SEReads.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, uint64(workers*perWorker), s.BasesRead.Load())
	require.Equal(t, uint64(2*workers*perWorker), s.KmersExamined.Load())
	require.Equal(t, uint64(workers*perWorker), s.GoodReads.Load())
	require.Equal(t, uint64(workers*perWorker), s.TotalReads())
}
