package fasta

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, input string) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(input))
	var recs []Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return recs
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		recs = append(recs, rec)
	}
}

func TestReadFASTA(t *testing.T) {
	input := ">read1 sample descriptive text\n" +
		"GACTC\n" +
		"TGACC\n" +
		"\n" +
		">read2\n" +
		"ACTCG\n"
	recs := readAll(t, input)

	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].ID != "read1" {
		t.Errorf("ID = %q, want read1 (description stripped)", recs[0].ID)
	}
	if string(recs[0].Seq) != "GACTCTGACC" {
		t.Errorf("multi-line sequence = %q, want GACTCTGACC", recs[0].Seq)
	}
	if recs[1].ID != "read2" || string(recs[1].Seq) != "ACTCG" {
		t.Errorf("second record = %q/%q", recs[1].ID, recs[1].Seq)
	}
}

func TestReadFASTACRLFAndLeadingBlanks(t *testing.T) {
	input := "\r\n\n>r1\r\nGACTC\r\n"
	recs := readAll(t, input)
	if len(recs) != 1 || string(recs[0].Seq) != "GACTC" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestReadFASTANoTrailingNewline(t *testing.T) {
	recs := readAll(t, ">r1\nGACTC")
	if len(recs) != 1 || string(recs[0].Seq) != "GACTC" {
		t.Fatalf("records = %+v", recs)
	}
}

func TestReadFASTAEmptySequence(t *testing.T) {
	r := NewReader(strings.NewReader(">r1\n>r2\nGACTC\n"))
	_, err := r.Read()
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("empty record: got %v, want ErrMalformed", err)
	}
}

func TestReadFASTQ(t *testing.T) {
	input := "@read1 extra\nGACTC\n+\nIIIII\n@read2\nACTCG\n+read2\nJJJJJ\n"
	r := NewReader(strings.NewReader(input))

	rec, err := r.Read()
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if r.Format() != FormatFASTQ {
		t.Errorf("Format = %v, want FormatFASTQ", r.Format())
	}
	if rec.ID != "read1" || string(rec.Seq) != "GACTC" {
		t.Errorf("first record = %q/%q", rec.ID, rec.Seq)
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if rec.ID != "read2" || string(rec.Seq) != "ACTCG" {
		t.Errorf("second record = %q/%q", rec.ID, rec.Seq)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Errorf("after last record: got %v, want io.EOF", err)
	}
}

func TestReadFASTQQualityLengthMismatch(t *testing.T) {
	r := NewReader(strings.NewReader("@r1\nGACTC\n+\nIII\n"))
	if _, err := r.Read(); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestReadFASTQTruncated(t *testing.T) {
	r := NewReader(strings.NewReader("@r1\nGACTC\n+\n"))
	if _, err := r.Read(); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v, want ErrMalformed", err)
	}
}

func TestUnknownFormat(t *testing.T) {
	r := NewReader(strings.NewReader("GACTC\nACTCG\n"))
	if _, err := r.Read(); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("got %v, want ErrUnknownFormat", err)
	}
}

func TestErrorIsSticky(t *testing.T) {
	r := NewReader(strings.NewReader("@r1\nGACTC\n+\nIII\n@r2\nACTCG\n+\nIIIII\n"))
	_, first := r.Read()
	if first == nil {
		t.Fatal("expected an error from the malformed first record")
	}
	_, second := r.Read()
	if !errors.Is(second, ErrMalformed) {
		t.Errorf("reader recovered after an error: got %v", second)
	}
}

func TestFormatDetection(t *testing.T) {
	r := NewReader(strings.NewReader(">r1\nGACTC\n"))
	if r.Format() != FormatUnknown {
		t.Error("format detected before the first Read")
	}
	if _, err := r.Read(); err != nil {
		t.Fatal(err)
	}
	if r.Format() != FormatFASTA {
		t.Errorf("Format = %v, want FormatFASTA", r.Format())
	}
}
