package csvimport

import (
	"reflect"
	"testing"
)

func TestNormalizeHeaders(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   []string
	}{
		{
			name:   "plain lowercase passthrough",
			fields: []string{"question", "answer"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "mixed case lowered",
			fields: []string{"Question", "ANSWER"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "surrounding whitespace trimmed",
			fields: []string{"  question ", "\tanswer\n"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "surrounding quotes trimmed",
			fields: []string{`"question"`, "'answer'"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "leading BOM stripped",
			fields: []string{"\uFEFFquestion", "answer"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "nul and vertical tab trimmed",
			fields: []string{"question\x00", "\vanswer"},
			want:   []string{"question", "answer"},
		},
		{
			name:   "order preserved with extra columns",
			fields: []string{"Hint", "Answer", "Question"},
			want:   []string{"hint", "answer", "question"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeaders(tt.fields); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeHeaders(%q) = %q, want %q", tt.fields, got, tt.want)
			}
		})
	}
}

func TestColumnIndex(t *testing.T) {
	headers := []string{"hint", "question", "answer", "question"}

	if got := columnIndex(headers, "question"); got != 1 {
		t.Errorf("columnIndex(question) = %d, want first occurrence 1", got)
	}
	if got := columnIndex(headers, "answer"); got != 2 {
		t.Errorf("columnIndex(answer) = %d, want 2", got)
	}
	if got := columnIndex(headers, "missing"); got != -1 {
		t.Errorf("columnIndex(missing) = %d, want -1", got)
	}
}

func TestMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{
			name:    "all present",
			headers: []string{"question", "answer"},
			want:    nil,
		},
		{
			name:    "answer absent",
			headers: []string{"question", "hint"},
			want:    []string{"answer"},
		},
		{
			name:    "both absent",
			headers: []string{"front", "back"},
			want:    []string{"question", "answer"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := missingColumns(tt.headers, RequiredColumns)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("missingColumns(%q) = %q, want %q", tt.headers, got, tt.want)
			}
		})
	}
}
