package prompt

import "strings"

// EnforceWordLimit trims text to at most limit words. Trimmed output is
// closed with a period unless it already ends with terminal punctuation;
// a trailing comma, semicolon, or colon is dropped first. A non-positive
// limit leaves the text untouched.
func EnforceWordLimit(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	trimmed := strings.Join(words[:limit], " ")
	if !strings.HasSuffix(trimmed, ".") && !strings.HasSuffix(trimmed, "!") && !strings.HasSuffix(trimmed, "?") {
		trimmed = strings.TrimRight(trimmed, ",;:") + "."
	}
	return trimmed
}
