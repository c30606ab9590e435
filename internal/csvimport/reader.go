package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bomSkippingReader wraps an io.Reader and drops a UTF-8 byte-order-mark
// (0xEF 0xBB 0xBF) if the stream starts with one. Windows spreadsheet tools
// routinely prepend it.
type bomSkippingReader struct {
	reader  io.Reader
	checked bool
	buf     [3]byte
	rest    []byte
}

func newBOMSkippingReader(r io.Reader) *bomSkippingReader {
	return &bomSkippingReader{reader: r}
}

func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true

		n, err := io.ReadFull(r.reader, r.buf[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if n == 0 {
			return 0, err
		}
		if err != nil && err != io.EOF {
			return 0, err
		}

		if n == 3 && r.buf[0] == 0xEF && r.buf[1] == 0xBB && r.buf[2] == 0xBF {
			// BOM consumed; nothing to replay.
		} else {
			r.rest = r.buf[:n]
		}
	}

	if len(r.rest) > 0 {
		n := copy(p, r.rest)
		r.rest = r.rest[n:]
		return n, nil
	}

	return r.reader.Read(p)
}

// stream is an open CSV file positioned just past its normalized header row.
type stream struct {
	file      *os.File
	reader    *csv.Reader
	headers   []string
	delimiter rune
}

// openStream opens path for streaming reads: it checks existence and the
// .csv extension, skips a BOM, sniffs the delimiter from the first line
// without losing stream position, and parses and normalizes the header row.
// Failures map to the package sentinel errors.
func openStream(path string) (*stream, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingFile
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return nil, ErrInvalidExtension
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	br := bufio.NewReader(newBOMSkippingReader(f))

	// Sniff the delimiter from the first physical line, then replay that
	// line in front of the remaining stream so nothing is consumed.
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if strings.TrimSpace(line) == "" {
		f.Close()
		return nil, ErrEmptyFile
	}

	delim := DetectDelimiter(line)

	r := csv.NewReader(io.MultiReader(strings.NewReader(line), br))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headerRow, err := r.Read()
	if err == io.EOF {
		f.Close()
		return nil, ErrEmptyFile
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	return &stream{
		file:      f,
		reader:    r,
		headers:   NormalizeHeaders(headerRow),
		delimiter: delim,
	}, nil
}

func (s *stream) Close() error {
	return s.file.Close()
}

// isEmptyRow reports whether every field is empty or whitespace.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// field returns the trimmed value at idx, or "" when the row is too short
// or the column was never found.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
