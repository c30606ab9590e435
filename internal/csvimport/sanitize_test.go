package csvimport

import "testing"

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "What is the capital of France?",
			want: "What is the capital of France?",
		},
		{
			name: "simple tags removed",
			in:   "<b>Paris</b>",
			want: "Paris",
		},
		{
			name: "tag with attributes removed",
			in:   `<span class="hl">answer</span>`,
			want: "answer",
		},
		{
			name: "unclosed tag swallows remainder",
			in:   "before <oops after",
			want: "before ",
		},
		{
			name: "empty string",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "internal run collapsed",
			in:   "a   b\t\tc",
			want: "a b c",
		},
		{
			name: "newlines collapsed",
			in:   "line one\nline two\r\nline three",
			want: "line one line two line three",
		},
		{
			name: "ends trimmed",
			in:   "  padded  ",
			want: "padded",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseWhitespace(tt.in); got != tt.want {
				t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeText(t *testing.T) {
	in := "  <p>What is   the\ncapital of <b>France</b>?</p>  "
	want := "What is the capital of France?"

	if got := SanitizeText(in); got != want {
		t.Errorf("SanitizeText(%q) = %q, want %q", in, got, want)
	}
}
