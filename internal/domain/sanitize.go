package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxTagNameLen is the maximum length of a sanitized tag name.
const MaxTagNameLen = 100

var (
	spaceRun        = regexp.MustCompile(`\s+`)
	spaceBeforeDot  = regexp.MustCompile(`\s+\.`)
	spaceAfterDash  = regexp.MustCompile(`-\s+`)
	lowerAfterDash  = regexp.MustCompile(`(-\s*)([a-z])`)
	authorTokenizer = regexp.MustCompile(`(\s+|-)`)
)

// SanitizeTagName normalizes a tag name to a single lowercase ASCII
// alphanumeric token. Accented characters are decomposed and reduced to
// their base letter; everything outside [a-z0-9] is dropped.
// Returns a validation error when nothing survives sanitization or the
// result exceeds MaxTagNameLen.
func SanitizeTagName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	name = b.String()

	if name == "" {
		return "", NewValidationError("name", "tag must contain at least one alphanumeric character")
	}

	if len(name) > MaxTagNameLen {
		return "", NewValidationError("name", "tag name cannot exceed 100 characters")
	}

	return name, nil
}

// SanitizeAuthorName normalizes an author name to canonical form:
//
//   - non-ASCII characters are decomposed and reduced to base letters,
//     everything outside letters, whitespace, hyphens, and periods dropped
//   - single letters become uppercase initials ("j" -> "J.")
//   - two-letter uppercase abbreviations gain a trailing period ("JR" -> "JR.")
//   - other words are capitalized ("twain" -> "Twain")
//   - whitespace collapses to single spaces, hyphenated segments stay
//     joined with each segment capitalized ("jean-paul" -> "Jean-Paul")
//
// The transform is idempotent: applying it to its own output is a no-op.
func SanitizeAuthorName(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < 128 || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case unicode.IsSpace(r), r == '-', r == '.':
			return r
		default:
			return -1
		}
	}, b.String())

	// Tokenize keeping whitespace runs and hyphens as their own tokens.
	var parts []string
	last := 0
	for _, loc := range authorTokenizer.FindAllStringIndex(name, -1) {
		if loc[0] > last {
			parts = append(parts, name[last:loc[0]])
		}
		parts = append(parts, name[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(name) {
		parts = append(parts, name[last:])
	}

	var out []string
	for _, part := range parts {
		switch {
		case part == "":
			continue
		case strings.TrimSpace(part) == "":
			if len(out) == 0 || out[len(out)-1] != " " {
				out = append(out, " ")
			}
		case part == "-":
			out = append(out, "-")
		default:
			out = append(out, formatNameToken(part))
		}
	}

	result := strings.Join(out, "")
	result = spaceRun.ReplaceAllString(result, " ")
	result = spaceBeforeDot.ReplaceAllString(result, ".")
	result = spaceAfterDash.ReplaceAllString(result, "-")
	result = lowerAfterDash.ReplaceAllStringFunc(result, strings.ToUpper)

	return strings.TrimSpace(result)
}

// formatNameToken applies capitalization rules to a single word token.
func formatNameToken(tok string) string {
	switch {
	case len(tok) == 1:
		// Single letter: an initial.
		return strings.ToUpper(tok) + "."
	case len(tok) == 2 && tok == strings.ToUpper(tok) && tok != strings.ToLower(tok):
		// Two-letter abbreviation, already uppercase.
		if !strings.HasSuffix(tok, ".") {
			return tok + "."
		}
		return tok
	case len(tok) == 3 && strings.HasSuffix(tok, ".") &&
		tok[:2] == strings.ToUpper(tok[:2]) && tok[:2] != strings.ToLower(tok[:2]):
		// Already canonical "XX." abbreviation; keeps the transform
		// idempotent ("JR" -> "JR." must not decay to "Jr.").
		return tok
	default:
		return strings.ToUpper(tok[:1]) + strings.ToLower(tok[1:])
	}
}
