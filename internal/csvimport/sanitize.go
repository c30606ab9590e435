package csvimport

import "strings"

// StripTags removes markup sequences of the form <...> from s, delimiters
// included. It is a deliberate heuristic, not an HTML parser: anything
// between '<' and the next '>' is dropped. Flashcard text pasted out of rich
// editors rarely contains markup more exotic than that, and a stray '<'
// without a closing '>' simply swallows the rest of the field rather than
// leaking tags into stored cards.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	inTag := false
	for _, r := range s {
		switch r {
		case '<':
			inTag = true
		case '>':
			inTag = false
		default:
			if !inTag {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// CollapseWhitespace replaces runs of whitespace (space, tab, newline,
// carriage return) with a single space and trims the ends.
func CollapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	seenSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			if !seenSpace {
				b.WriteByte(' ')
				seenSpace = true
			}
		default:
			b.WriteRune(r)
			seenSpace = false
		}
	}

	return strings.TrimSpace(b.String())
}

// SanitizeText reduces a raw CSV field to plain text: tags stripped,
// whitespace collapsed, ends trimmed. The sanitized question text doubles as
// the card's uniqueness key, so sanitization must happen before any
// duplicate check.
func SanitizeText(s string) string {
	return CollapseWhitespace(StripTags(s))
}
