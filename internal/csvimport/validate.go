package csvimport

import "io"

// DefaultRowCountCap bounds the count-only scan performed during validation.
// Rows past the cap exist and will be processed; they are just not counted
// in the preview. Processing itself has no such limit.
const DefaultRowCountCap = 10000

// Validation is the result of a read-only preview pass over an upload.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Headers  []string `json:"headers"`
	RowCount int      `json:"row_count"`
}

// Validator checks an uploaded file against the import schema without
// touching storage. Safe to call repeatedly on the same file.
type Validator struct {
	rowCountCap int
}

// NewValidator returns a Validator with the default row-count cap.
func NewValidator() *Validator {
	return &Validator{rowCountCap: DefaultRowCountCap}
}

// Validate confirms the file exists, is a CSV, has a parseable header row
// containing the required columns, and counts the remaining data rows up to
// the cap. All failures are reported as operator-facing message strings.
func (v *Validator) Validate(path string) Validation {
	result := Validation{Valid: true}

	s, err := openStream(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, userMessage(err))
		return result
	}
	defer s.Close()

	result.Headers = s.headers

	if missing := missingColumns(s.headers, RequiredColumns); len(missing) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, userMessage(&MissingColumnsError{
			Missing: missing,
			Found:   s.headers,
		}))
		return result
	}

	limit := v.rowCountCap
	if limit <= 0 {
		limit = DefaultRowCountCap
	}

	count := 0
	last := 1 // header is physical line 1
	for count < limit {
		_, err := s.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row ends the preview count; processing handles
			// such rows individually later.
			break
		}
		// Count by physical line so fully blank lines, which the csv
		// reader swallows, are still counted as rows.
		line, _ := s.reader.FieldPos(0)
		count += line - last
		last = line
	}
	if count > limit {
		count = limit
	}
	result.RowCount = count

	return result
}
