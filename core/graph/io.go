// core/graph/io.go
package graph

import (
	"encoding/binary"
	"io"
	"os"

	"kreads-core/kmer"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// magic identifies a k-mer set file; bump the digits on format changes.
var magic = [8]byte{'K', 'S', 'E', 'T', 'v', '0', '0', '1'}

// Build reads FASTA/FASTQ files (gzip-transparent) and returns an index
// holding every k-mer of every valid run they contain.
func Build(k int, files []string) (*Index, error) {
	x, err := New(k)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if err := x.addFile(file); err != nil {
			return nil, err
		}
	}
	return x, nil
}

func (x *Index) addFile(file string) error {
	reader, err := fastx.NewDefaultReader(file)
	if err != nil {
		return errors.Wrap(err, file)
	}
	defer reader.Close()
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, file)
		}
		x.AddSeq(record.Seq.Seq)
	}
}

// Save writes the index to path as a zstd-compressed stream of
// canonical codes.
func (x *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "graph: save")
	}
	zw, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return errors.Wrap(err, "graph: save")
	}
	err = x.encode(zw)
	if cerr := zw.Close(); err == nil {
		err = cerr
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, path)
}

func (x *Index) encode(w io.Writer) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(x.k)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(x.keys))); err != nil {
		return err
	}
	var buf [8]byte
	for c := range x.keys {
		binary.LittleEndian.PutUint64(buf[:], uint64(c))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// Load reads an index written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "graph: load")
	}
	defer f.Close()
	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	defer zr.Close()
	x, err := decode(zr)
	return x, errors.Wrap(err, path)
}

func decode(r io.Reader) (*Index, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if hdr != magic {
		return nil, errors.New("graph: not a k-mer set file")
	}
	var k32 uint32
	if err := binary.Read(r, binary.LittleEndian, &k32); err != nil {
		return nil, err
	}
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	x, err := New(int(k32))
	if err != nil {
		return nil, err
	}
	var buf [8]byte
	for i := uint64(0); i < n; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		x.keys[kmer.Code(binary.LittleEndian.Uint64(buf[:]))] = struct{}{}
	}
	return x, nil
}

// LoadAll loads one or more k-mer set files into a single index. All
// files must share the same k.
func LoadAll(paths []string) (*Index, error) {
	var merged *Index
	for _, p := range paths {
		x, err := Load(p)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = x
			continue
		}
		if err := merged.Absorb(x); err != nil {
			return nil, errors.Wrap(err, p)
		}
	}
	if merged == nil {
		return nil, errors.New("graph: no k-mer set files given")
	}
	return merged, nil
}
