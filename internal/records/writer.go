package records

import (
	"bufio"
	"fmt"
	"io"
)

// Writer serializes clusters of records.
//
// Clusters are separated by the record separator and records within a
// cluster by the field separator. Output ends with exactly one newline;
// an empty partition writes nothing.
type Writer struct {
	w   *bufio.Writer
	ofs []byte
	ors []byte
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer, ofs FieldSeparator, ors RecordSeparator) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		ofs: ofs.Bytes(),
		ors: ors.Bytes(),
	}
}

// WritePartition writes every cluster in order, then flushes.
func (wr *Writer) WritePartition(clusters [][]string) error {
	if len(clusters) == 0 {
		return nil
	}

	for k, c := range clusters {
		if k > 0 {
			wr.w.Write(wr.ors)
		}
		for i, rec := range c {
			if i > 0 {
				wr.w.Write(wr.ofs)
			}
			wr.w.WriteString(rec)
		}
	}
	wr.w.WriteByte('\n')

	// bufio.Writer keeps the first write error and reports it here.
	if err := wr.w.Flush(); err != nil {
		return fmt.Errorf("writing clusters: %w", err)
	}
	return nil
}
