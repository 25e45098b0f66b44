// internal/seqio/source.go
package seqio

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Source yields classification units from one input specification.
// Next returns io.EOF once drained.
type Source interface {
	Next() (Pair, error)
	Close() error
}

// reader wraps a fastx reader and copies records out of its reuse
// buffer.
type reader struct {
	path string
	fx   *fastx.Reader
}

func openReader(path string) (*reader, error) {
	fx, err := fastx.NewDefaultReader(path)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return &reader{path: path, fx: fx}, nil
}

func (r *reader) next() (*Read, error) {
	record, err := r.fx.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, r.path)
	}
	rd := &Read{
		Name: append([]byte(nil), record.Name...),
		Seq:  append([]byte(nil), record.Seq.Seq...),
	}
	if len(record.Seq.Qual) > 0 {
		rd.Qual = append([]byte(nil), record.Seq.Qual...)
	}
	return rd, nil
}

func (r *reader) Close() error {
	r.fx.Close()
	return nil
}

// Single reads one file, one read per unit.
func Single(path string) (Source, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	return &singleSource{r}, nil
}

type singleSource struct{ r *reader }

func (s *singleSource) Next() (Pair, error) {
	rd, err := s.r.next()
	if err != nil {
		return Pair{}, err
	}
	return Pair{R1: rd}, nil
}

func (s *singleSource) Close() error { return s.r.Close() }

// Split reads two files in lockstep, one pair per unit. The files must
// hold the same number of reads.
func Split(path1, path2 string) (Source, error) {
	r1, err := openReader(path1)
	if err != nil {
		return nil, err
	}
	r2, err := openReader(path2)
	if err != nil {
		_ = r1.Close()
		return nil, err
	}
	return &splitSource{r1: r1, r2: r2}, nil
}

type splitSource struct{ r1, r2 *reader }

func (s *splitSource) Next() (Pair, error) {
	rd1, err1 := s.r1.next()
	rd2, err2 := s.r2.next()
	switch {
	case err1 == io.EOF && err2 == io.EOF:
		return Pair{}, io.EOF
	case err1 == io.EOF || err2 == io.EOF:
		return Pair{}, errors.Errorf("unequal number of reads in %s and %s", s.r1.path, s.r2.path)
	case err1 != nil:
		return Pair{}, err1
	case err2 != nil:
		return Pair{}, err2
	}
	return Pair{R1: rd1, R2: rd2}, nil
}

func (s *splitSource) Close() error {
	err := s.r1.Close()
	if cerr := s.r2.Close(); err == nil {
		err = cerr
	}
	return err
}

// Interleaved reads one file, two consecutive records per unit. A
// trailing unpaired record is passed through as a single-read unit.
func Interleaved(path string) (Source, error) {
	r, err := openReader(path)
	if err != nil {
		return nil, err
	}
	return &interleavedSource{r}, nil
}

type interleavedSource struct{ r *reader }

func (s *interleavedSource) Next() (Pair, error) {
	rd1, err := s.r.next()
	if err != nil {
		return Pair{}, err
	}
	rd2, err := s.r.next()
	if err == io.EOF {
		return Pair{R1: rd1}, nil
	}
	if err != nil {
		return Pair{}, err
	}
	return Pair{R1: rd1, R2: rd2}, nil
}

func (s *interleavedSource) Close() error { return s.r.Close() }
