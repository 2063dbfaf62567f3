// Package cli provides shared utilities for CLI commands.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Errors
var (
	ErrInvalidPattern = errors.New("cli: invalid pattern")
	ErrDomainNotFound = errors.New("cli: domain not found")
	ErrNoMatch        = errors.New("cli: no domains match pattern")
)

// ExpandPattern expands a glob pattern against the stored domain names.
// If the pattern contains glob characters (*?[), it performs glob matching.
// Otherwise, it performs exact matching.
func ExpandPattern(pattern string, domains []string) ([]string, error) {
	// Validate pattern syntax
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	hasGlob := strings.ContainsAny(pattern, "*?[")

	if !hasGlob {
		// Exact match - verify the domain exists
		for _, d := range domains {
			if d == pattern {
				return []string{pattern}, nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrDomainNotFound, pattern)
	}

	var matches []string
	for _, d := range domains {
		matched, err := filepath.Match(pattern, d)
		if err != nil {
			return nil, err
		}
		if matched {
			matches = append(matches, d)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoMatch, pattern)
	}

	return matches, nil
}

// ExpandPatterns expands multiple glob patterns against the stored domain
// names. Returns unique matching domains preserving order of first match.
func ExpandPatterns(patterns []string, domains []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := ExpandPattern(pattern, domains)
		if err != nil {
			return nil, err
		}
		for _, d := range matches {
			if !seen[d] {
				seen[d] = true
				result = append(result, d)
			}
		}
	}

	return result, nil
}

// SortDomains returns a sorted copy of the domains slice.
func SortDomains(domains []string) []string {
	sorted := make([]string, len(domains))
	copy(sorted, domains)
	sort.Strings(sorted)
	return sorted
}
