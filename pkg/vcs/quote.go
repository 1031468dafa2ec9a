package vcs

// StripQuotes removes one pair of matching surrounding quotes ("..." or
// '...'). A value starting with a backslash and ending with a double quote,
// as produced when a shell escapes the opening quote, also loses its first
// and last character. Anything else is returned unchanged.
func StripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}

	first, last := s[0], s[len(s)-1]
	switch {
	case first == '"' && last == '"',
		first == '\'' && last == '\'',
		first == '\\' && last == '"':
		return s[1 : len(s)-1]
	}
	return s
}
