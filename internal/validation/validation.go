// Package validation holds the syntactic rules for user-supplied values and
// the input sanitizer. Everything here is pure string work; persistence always
// goes through parameter binding regardless of these checks.
package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxMessageLen is the authoritative message length ceiling, enforced after
// sanitization. It matches the schema CHECK constraint.
const MaxMessageLen = 4096

const (
	MinLoginLen    = 3
	MaxLoginLen    = 50
	MinPasswordLen = 6
	MaxPasswordLen = 128
)

var (
	loginRE = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)
	uuidRE  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// sqlKeywords are matched with word boundaries (neighbors must be
// non-alphanumeric and not underscore).
var sqlKeywords = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE", "DROP", "UNION", "OR", "AND",
	"WHERE", "FROM", "TABLE", "DATABASE", "ALTER", "CREATE", "EXEC", "SCRIPT",
}

// xssPatterns are matched as lowercase substrings.
var xssPatterns = []string{
	"<script", "javascript:", "onload=", "onerror=", "onclick=",
	"eval(", "alert(", "document.cookie", "<iframe",
}

func LoginValid(s string) bool {
	return loginRE.MatchString(s)
}

// PasswordValid requires 6..128 characters with at least one letter and one
// digit.
func PasswordValid(s string) bool {
	if len(s) < MinPasswordLen || len(s) > MaxPasswordLen {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if hasLetter && hasDigit {
			return true
		}
	}
	return hasLetter && hasDigit
}

func UUIDValid(s string) bool {
	return uuidRE.MatchString(s)
}

// MessageTextValid checks the post-sanitization invariant: non-empty and
// within the ceiling.
func MessageTextValid(s string) bool {
	return len(s) >= 1 && len(s) <= MaxMessageLen
}

// Sanitize normalizes a user-supplied string: strips NUL bytes, escapes
// backslash, single and double quotes, collapses newline/carriage-return/tab
// into single spaces and trims outer whitespace. One-shot: applying it twice
// expands the escapes again.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `''`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}

// LooksLikeSQLInjection reports whether s contains one of the guarded SQL
// keywords as a standalone word. Advisory only.
func LooksLikeSQLInjection(s string) bool {
	upper := strings.ToUpper(s)
	for _, kw := range sqlKeywords {
		for pos := 0; ; {
			i := strings.Index(upper[pos:], kw)
			if i < 0 {
				break
			}
			i += pos
			if boundaryBefore(upper, i) && boundaryAfter(upper, i+len(kw)) {
				return true
			}
			pos = i + 1
		}
	}
	return false
}

// LooksLikeXSS reports whether s contains a known script-injection fragment.
// Advisory only.
func LooksLikeXSS(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range xssPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// SecurityClean sanitizes s and rejects it if an injection heuristic fires on
// the sanitized form. A non-empty input that comes back empty means rejection.
func SecurityClean(s string) string {
	if s == "" {
		return s
	}
	cleaned := Sanitize(s)
	if cleaned == "" {
		return cleaned
	}
	if LooksLikeSQLInjection(cleaned) || LooksLikeXSS(cleaned) {
		return ""
	}
	return cleaned
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	return isBoundary(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	return isBoundary(s[i])
}

func isBoundary(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
		return false
	}
	return true
}
