// Package model holds the shared domain types: canonical domains, competitor
// records, metrics bundles, and scoring inputs. It has no dependencies beyond
// the standard library so every other package can import it freely.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ErrEmptyDomain is returned when canonicalization leaves nothing usable.
var ErrEmptyDomain = eris.New("model: empty domain")

// CanonicalDomain reduces a raw domain or URL to its canonical form: scheme,
// credentials, port, path, query, and fragment stripped, lowercased, with a
// leading "www." and trailing dots removed. Two inputs that canonicalize to
// the same string refer to the same site.
func CanonicalDomain(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyDomain
	}

	// Scheme or scheme-relative prefix.
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	} else {
		s = strings.TrimPrefix(s, "//")
	}

	// Path, query, fragment.
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}

	// Credentials.
	if i := strings.LastIndex(s, "@"); i >= 0 {
		s = s[i+1:]
	}

	// Port.
	if i := strings.LastIndex(s, ":"); i >= 0 {
		s = s[:i]
	}

	s = strings.ToLower(s)
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimRight(s, ".")

	if s == "" {
		return "", ErrEmptyDomain
	}
	return s, nil
}

// MustCanonicalDomain is CanonicalDomain returning "" on failure, for inputs
// where an unusable domain should simply be skipped.
func MustCanonicalDomain(raw string) string {
	s, err := CanonicalDomain(raw)
	if err != nil {
		return ""
	}
	return s
}
