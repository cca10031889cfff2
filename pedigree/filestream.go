package pedigree

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// PedStream yields pedigree records one line at a time.
type PedStream struct {
	name      string
	file      *os.File
	reader    *bufio.Reader
	lineCount int
	noHeader  bool
}

// NewPedStream wraps r. Unless noHeader is set the first line is skipped.
func NewPedStream(r io.Reader, name string, noHeader bool) *PedStream {
	return &PedStream{
		name:     name,
		reader:   bufio.NewReader(r),
		noHeader: noHeader,
	}
}

// NewPedFileStream opens filename for streaming.
func NewPedFileStream(filename string, noHeader bool) (*PedStream, error) {
	file, err := openPedFile(filename)
	if err != nil {
		return nil, err
	}
	ps := NewPedStream(file, filename, noHeader)
	ps.file = file
	return ps, nil
}

// Next returns the next record, or io.EOF once the input is exhausted.
// Blank lines are skipped.
func (ps *PedStream) Next() (Record, error) {
	for {
		line, err := ps.reader.ReadString('\n')
		if line == "" && err != nil {
			return Record{}, err
		}
		if err != nil && err != io.EOF {
			return Record{}, err
		}
		ps.lineCount++

		if ps.lineCount == 1 && !ps.noHeader {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 4 {
			return Record{}, MalformedRecordError{File: ps.name, Line: ps.lineCount, Fields: len(fields)}
		}
		return Record{
			SampleID: fields[0],
			FatherID: fields[1],
			MotherID: fields[2],
			Sex:      fields[3],
		}, nil
	}
}

// LineCount returns the number of lines consumed so far.
func (ps *PedStream) LineCount() int {
	return ps.lineCount
}

// Close releases the underlying file, if any.
func (ps *PedStream) Close() error {
	if ps.file == nil {
		return nil
	}
	err := ps.file.Close()
	ps.file = nil
	return err
}
