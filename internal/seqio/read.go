// internal/seqio/read.go
package seqio

import (
	"bytes"
	"io"
)

// Read is one sequencing read, decoupled from the fastx reader's
// internal buffers so it can outlive the next Read() call.
type Read struct {
	Name []byte // full header line, without the '@'/'>' marker
	Seq  []byte
	Qual []byte // empty for FASTA input
}

// Pair is the unit of classification: a single read (R2 nil) or a
// read pair.
type Pair struct {
	R1, R2 *Read
}

// Paired reports whether the unit carries a second read.
func (p Pair) Paired() bool { return p.R2 != nil }

// FormatTo writes the read as one FASTQ or FASTA record. FASTQ output
// of quality-less input (FASTA source) substitutes a constant maximal
// quality, matching the width of the sequence.
func (r *Read) FormatTo(w io.Writer, fastq bool) error {
	var buf bytes.Buffer
	if fastq {
		buf.Grow(2*len(r.Seq) + len(r.Name) + 6)
		buf.WriteByte('@')
		buf.Write(r.Name)
		buf.WriteByte('\n')
		buf.Write(r.Seq)
		buf.WriteString("\n+\n")
		if len(r.Qual) == len(r.Seq) {
			buf.Write(r.Qual)
		} else {
			for range r.Seq {
				buf.WriteByte('I')
			}
		}
		buf.WriteByte('\n')
	} else {
		buf.Grow(len(r.Seq) + len(r.Name) + 3)
		buf.WriteByte('>')
		buf.Write(r.Name)
		buf.WriteByte('\n')
		buf.Write(r.Seq)
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
