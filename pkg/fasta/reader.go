// Package fasta streams sequencing reads from FASTA and FASTQ input.
// The reader is line-oriented and keeps one record in memory at a time,
// so arbitrarily large read sets can feed the filter builder.
package fasta

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for malformed input.
var (
	// ErrMalformed indicates a record that violates the FASTA/FASTQ format.
	ErrMalformed = errors.New("fasta: malformed record")
	// ErrUnknownFormat indicates input starting with neither '>' nor '@'.
	ErrUnknownFormat = errors.New("fasta: input is neither FASTA nor FASTQ")
)

// Record is one sequencing read.
type Record struct {
	ID  string
	Seq []byte
}

// Format identifies the detected input format.
type Format int

const (
	FormatUnknown Format = iota
	FormatFASTA
	FormatFASTQ
)

// Reader streams records from FASTA ('>' headers, multi-line sequences)
// or FASTQ ('@' headers, four-line records) input. The format is
// detected from the first non-empty line.
type Reader struct {
	br     *bufio.Reader
	format Format
	line   int
	peeked []byte // carried-over header line, FASTA only
	err    error
}

// NewReader wraps r. Format detection happens on the first Read.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Format returns the detected input format, FormatUnknown before the
// first Read.
func (r *Reader) Format() Format { return r.format }

// Read returns the next record, or io.EOF when the input is exhausted.
// After any non-nil error the reader stays in the error state.
func (r *Reader) Read() (Record, error) {
	if r.err != nil {
		return Record{}, r.err
	}
	rec, err := r.read()
	if err != nil {
		r.err = err
		return Record{}, err
	}
	return rec, nil
}

func (r *Reader) read() (Record, error) {
	if r.format == FormatUnknown {
		if err := r.detect(); err != nil {
			return Record{}, err
		}
	}
	if r.format == FormatFASTQ {
		return r.readFASTQ()
	}
	return r.readFASTA()
}

// detect skips leading blank lines and classifies the input.
func (r *Reader) detect() error {
	for {
		line, err := r.nextLine()
		if err != nil {
			return err
		}
		if len(line) == 0 {
			continue
		}
		switch line[0] {
		case '>':
			r.format = FormatFASTA
			r.peeked = line
			return nil
		case '@':
			r.format = FormatFASTQ
			r.peeked = line
			return nil
		default:
			return fmt.Errorf("%w: line %d starts with %q", ErrUnknownFormat, r.line, line[0])
		}
	}
}

func (r *Reader) readFASTA() (Record, error) {
	header := r.peeked
	r.peeked = nil
	for len(header) == 0 {
		var err error
		header, err = r.nextLine()
		if err != nil {
			return Record{}, err
		}
	}
	if header[0] != '>' {
		return Record{}, fmt.Errorf("%w: expected '>' header at line %d", ErrMalformed, r.line)
	}

	rec := Record{ID: headerID(header[1:])}
	for {
		line, err := r.nextLine()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Record{}, err
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			r.peeked = line
			break
		}
		rec.Seq = append(rec.Seq, line...)
	}
	if len(rec.Seq) == 0 {
		return Record{}, fmt.Errorf("%w: record %q has no sequence", ErrMalformed, rec.ID)
	}
	return rec, nil
}

func (r *Reader) readFASTQ() (Record, error) {
	header := r.peeked
	r.peeked = nil
	if header == nil {
		var err error
		header, err = r.nextLine()
		if err != nil {
			return Record{}, err
		}
		for len(header) == 0 {
			header, err = r.nextLine()
			if err != nil {
				return Record{}, err
			}
		}
	}
	if header[0] != '@' {
		return Record{}, fmt.Errorf("%w: expected '@' header at line %d", ErrMalformed, r.line)
	}
	seq, err := r.requireLine("sequence")
	if err != nil {
		return Record{}, err
	}
	plus, err := r.requireLine("separator")
	if err != nil {
		return Record{}, err
	}
	if len(plus) == 0 || plus[0] != '+' {
		return Record{}, fmt.Errorf("%w: expected '+' separator at line %d", ErrMalformed, r.line)
	}
	qual, err := r.requireLine("quality")
	if err != nil {
		return Record{}, err
	}
	if len(qual) != len(seq) {
		return Record{}, fmt.Errorf("%w: quality length %d != sequence length %d at line %d",
			ErrMalformed, len(qual), len(seq), r.line)
	}
	return Record{ID: headerID(header[1:]), Seq: seq}, nil
}

// requireLine reads one line that must exist; EOF here means a truncated
// record.
func (r *Reader) requireLine(what string) ([]byte, error) {
	line, err := r.nextLine()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: truncated record, missing %s line", ErrMalformed, what)
	}
	return line, err
}

// nextLine returns the next line without its terminator, as a private
// copy.
func (r *Reader) nextLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if len(line) == 0 && err != nil {
		return nil, err
	}
	r.line++
	line = bytes.TrimRight(line, "\r\n")
	out := make([]byte, len(line))
	copy(out, line)
	return out, nil
}

// headerID extracts the record ID: the header up to the first whitespace.
func headerID(h []byte) string {
	if i := bytes.IndexAny(h, " \t"); i >= 0 {
		h = h[:i]
	}
	return string(h)
}
