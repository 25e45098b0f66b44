// internal/output/destination_test.go
package output

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"kreads/internal/seqio"

	"github.com/shenwei356/xopen"
	"github.com/stretchr/testify/require"
)

func readGz(t *testing.T, path string) string {
	t.Helper()
	r, err := xopen.Ropen(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestSuffixes(t *testing.T) {
	require.Equal(t, []string{".fq.gz"}, Suffixes(false, true))
	require.Equal(t, []string{".fa.gz"}, Suffixes(false, false))
	require.Equal(t, []string{".1.fq.gz", ".2.fq.gz"}, Suffixes(true, true))
	require.Equal(t, []string{".1.fa.gz", ".2.fa.gz"}, Suffixes(true, false))
}

func TestCreateWriteClose(t *testing.T) {
	dir := t.TempDir()
	d, err := Create(filepath.Join(dir, "out"), false, true)
	require.NoError(t, err)
	r := &seqio.Read{Name: []byte("r1"), Seq: []byte("ACGT"), Qual: []byte("IIII")}
	require.NoError(t, d.WriteSingle(r))
	require.Equal(t, uint64(1), d.Printed())
	require.NoError(t, d.Close(false))
	require.Equal(t, "@r1\nACGT\n+\nIIII\n", readGz(t, filepath.Join(dir, "out.fq.gz")))
}

func TestCreateRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "out.fq.gz")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))
	_, err := Create(filepath.Join(dir, "out"), false, true)
	require.Error(t, err)
	// The pre-existing file is untouched.
	b, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, "x", string(b))
}

func TestCreateRefusesHiddenName(t *testing.T) {
	dir := t.TempDir()
	_, err := Create(dir+string(os.PathSeparator), false, true)
	require.Error(t, err)
}

func TestCreateMakesParentDirs(t *testing.T) {
	dir := t.TempDir()
	d, err := Create(filepath.Join(dir, "a", "b", "out"), false, false)
	require.NoError(t, err)
	require.NoError(t, d.Close(false))
	_, err = os.Stat(filepath.Join(dir, "a", "b", "out.fa.gz"))
	require.NoError(t, err)
}

func TestPairedCreateIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	// Second stream's target already exists: the first stream, already
	// opened by this call, must be closed and removed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "out.2.fq.gz"), []byte("x"), 0o644))
	_, err := Create(filepath.Join(dir, "out"), true, true)
	require.Error(t, err)
	_, serr := os.Stat(filepath.Join(dir, "out.1.fq.gz"))
	require.True(t, os.IsNotExist(serr), "partial stream must be rolled back")
}

func TestCloseWithRemoveDeletesFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := Create(filepath.Join(dir, "out"), true, false)
	require.NoError(t, err)
	require.NoError(t, d.Close(true))
	for _, p := range d.Paths() {
		_, serr := os.Stat(p)
		require.True(t, os.IsNotExist(serr), p)
	}
}

func TestConcurrentPairWritesNeverSplit(t *testing.T) {
	dir := t.TempDir()
	d, err := Create(filepath.Join(dir, "out"), true, false)
	require.NoError(t, err)

	const writers, perWriter = 8, 50
	errs := make(chan error, writers)
	var wg sync.WaitGroup
	wg.Add(writers)
	for w := 0; w < writers; w++ {
		go func() {
			defer wg.Done()
			r1 := &seqio.Read{Name: []byte("x/1"), Seq: []byte("AAAA")}
			r2 := &seqio.Read{Name: []byte("x/2"), Seq: []byte("TTTT")}
			for i := 0; i < perWriter; i++ {
				if err := d.WritePair(r1, r2); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, uint64(2*writers*perWriter), d.Printed())
	require.NoError(t, d.Close(false))

	want1, want2 := "", ""
	for i := 0; i < writers*perWriter; i++ {
		want1 += ">x/1\nAAAA\n"
		want2 += ">x/2\nTTTT\n"
	}
	require.Equal(t, want1, readGz(t, d.Paths()[0]))
	require.Equal(t, want2, readGz(t, d.Paths()[1]))
}
