// internal/output/destination.go
package output

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"kreads/internal/seqio"

	"github.com/pkg/errors"
	"github.com/shenwei356/xopen"
	log "github.com/sirupsen/logrus"
)

// Destination owns the gzipped output stream(s) of one input group: a
// single stream for single-end groups, two numbered streams for paired
// groups. Writes go through the destination's own mutex so concurrent
// workers never interleave mid-record. A Destination is either fully
// open or was never returned by Create.
type Destination struct {
	paths   []string
	streams []*xopen.Writer
	fastq   bool

	mu      sync.Mutex
	printed uint64
}

// Suffixes reproduces the toolkit's naming scheme:
// <stem>.fq.gz / <stem>.fa.gz, or <stem>.1.fq.gz + <stem>.2.fq.gz for
// paired destinations.
func Suffixes(paired, fastq bool) []string {
	ext := ".fa.gz"
	if fastq {
		ext = ".fq.gz"
	}
	if paired {
		return []string{".1" + ext, ".2" + ext}
	}
	return []string{ext}
}

func checkPath(path string) error {
	base := filepath.Base(path)
	if path == "" || base == "" || base == "." || base == ".." ||
		strings.HasPrefix(base, ".") {
		return errors.Errorf("bad output name: %s", path)
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("output file already exists: %s", path)
	}
	return nil
}

// Create opens every stream the destination needs, or none: on any
// failure the streams already opened by this call are closed and their
// files removed before the error is returned.
func Create(stem string, paired, fastq bool) (*Destination, error) {
	d := &Destination{fastq: fastq}
	for _, suffix := range Suffixes(paired, fastq) {
		d.paths = append(d.paths, stem+suffix)
	}
	for _, path := range d.paths {
		if err := checkPath(path); err != nil {
			d.rollback()
			return nil, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o777); err != nil {
				d.rollback()
				return nil, errors.Wrapf(err, "cannot create directory for %s", path)
			}
		}
		w, err := xopen.Wopen(path)
		if err != nil {
			d.rollback()
			return nil, errors.Wrapf(err, "cannot open %s", path)
		}
		d.streams = append(d.streams, w)
	}
	return d, nil
}

// rollback closes and deletes whatever this half-built destination has
// opened so far.
func (d *Destination) rollback() {
	for i, w := range d.streams {
		_ = w.Close()
		if err := os.Remove(d.paths[i]); err != nil {
			log.Warnf("cannot delete file %s: %v", d.paths[i], err)
		}
	}
	d.streams = nil
}

// Paths returns the file path(s) backing the destination.
func (d *Destination) Paths() []string { return d.paths }

// Printed returns how many reads have been written through the
// destination.
func (d *Destination) Printed() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.printed
}

// WriteSingle writes one read to the destination's only stream.
func (d *Destination) WriteSingle(r *seqio.Read) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := r.FormatTo(d.streams[0], d.fastq); err != nil {
		return errors.Wrap(err, d.paths[0])
	}
	d.printed++
	return nil
}

// WritePair writes both members of a pair, r1 to the first stream and
// r2 to the second, under a single lock acquisition so the pair is
// never split by a concurrent writer.
func (d *Destination) WritePair(r1, r2 *seqio.Read) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := r1.FormatTo(d.streams[0], d.fastq); err != nil {
		return errors.Wrap(err, d.paths[0])
	}
	if err := r2.FormatTo(d.streams[1], d.fastq); err != nil {
		return errors.Wrap(err, d.paths[1])
	}
	d.printed += 2
	return nil
}

// Close closes all streams. With remove set (startup rollback) the
// backing files are deleted as well; deletion failures are reported
// but not escalated.
func (d *Destination) Close(remove bool) error {
	var err error
	for i, w := range d.streams {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, d.paths[i])
		}
		if remove {
			if rerr := os.Remove(d.paths[i]); rerr != nil {
				log.Warnf("cannot delete file %s: %v", d.paths[i], rerr)
			}
		}
	}
	d.streams = nil
	return err
}
