package utils

import (
	"strings"
	"unicode/utf8"
)

// CleanUTF8 strips invalid UTF8 sequences and NUL bytes from user-entered
// text. Postgres text columns reject NUL, so free-text fields are run through
// this before reaching a repository. The boolean reports whether anything was
// removed.
func CleanUTF8(input string) (string, bool) {
	needsCleaning := strings.Contains(input, "\x00") || !utf8.ValidString(input)

	if !needsCleaning {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}
