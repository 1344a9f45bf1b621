package shared

import (
	"errors"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ToTitle upper-cases the first letter of every word, leaving the rest alone.
func ToTitle(s string) string {
	return titleCaser.String(s)
}

// ToDisplayName turns a package name like "my-cool_app" into "My Cool App".
func ToDisplayName(s string) string {
	s = strings.TrimPrefix(s, "@")
	if idx := strings.Index(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	s = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(s)
	return ToTitle(strings.Join(strings.Fields(s), " "))
}

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	leadingDotOrUnd = regexp.MustCompile(`^[._]+`)
	invalidNameRune = regexp.MustCompile(`[^a-z0-9\-~]+`)
	diacritics      = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// ToValidPackageName derives a registry-safe package name from a directory
// name. The result may be empty when nothing usable is left.
func ToValidPackageName(name string) string {
	folded, _, err := transform.String(diacritics, name)
	if err != nil {
		folded = name
	}

	out := strings.ToLower(strings.TrimSpace(folded))
	out = whitespaceRun.ReplaceAllString(out, "-")
	out = leadingDotOrUnd.ReplaceAllString(out, "")
	out = invalidNameRune.ReplaceAllString(out, "-")
	return out
}

// IsEmptyDir reports whether dir has no entries. A missing directory counts
// as empty.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
