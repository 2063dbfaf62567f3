package cli

import (
	"errors"
	"testing"
)

func TestExpandPattern(t *testing.T) {
	domains := []string{
		"github.com",
		"gitlab.com",
		"example.com",
		"mail.example.com",
		"bank",
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
		wantErr  error
	}{
		{
			name:     "exact match",
			pattern:  "bank",
			expected: []string{"bank"},
		},
		{
			name:     "wildcard prefix",
			pattern:  "git*",
			expected: []string{"github.com", "gitlab.com"},
		},
		{
			name:     "wildcard suffix",
			pattern:  "*example.com",
			expected: []string{"example.com", "mail.example.com"},
		},
		{
			name:     "question mark",
			pattern:  "git?ub.com",
			expected: []string{"github.com"},
		},
		{
			name:     "match all",
			pattern:  "*",
			expected: []string{"github.com", "gitlab.com", "example.com", "mail.example.com", "bank"},
		},
		{
			name:    "no match glob",
			pattern: "missing-*",
			wantErr: ErrNoMatch,
		},
		{
			name:    "no match exact",
			pattern: "missing",
			wantErr: ErrDomainNotFound,
		},
		{
			name:    "invalid pattern",
			pattern: "[unclosed",
			wantErr: ErrInvalidPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPattern(tt.pattern, domains)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExpandPattern(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPattern(%q) error = %v", tt.pattern, err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ExpandPattern(%q) = %v, want %v", tt.pattern, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ExpandPattern(%q)[%d] = %q, want %q", tt.pattern, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestExpandPatterns(t *testing.T) {
	domains := []string{"github.com", "gitlab.com", "bank"}

	got, err := ExpandPatterns([]string{"git*", "bank", "github.com"}, domains)
	if err != nil {
		t.Fatalf("ExpandPatterns() error = %v", err)
	}
	expected := []string{"github.com", "gitlab.com", "bank"}
	if len(got) != len(expected) {
		t.Fatalf("ExpandPatterns() = %v, want %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("ExpandPatterns()[%d] = %q, want %q", i, got[i], expected[i])
		}
	}

	if _, err := ExpandPatterns([]string{"git*", "missing"}, domains); !errors.Is(err, ErrDomainNotFound) {
		t.Fatalf("ExpandPatterns() error = %v, want ErrDomainNotFound", err)
	}
}

func TestSortDomains(t *testing.T) {
	in := []string{"zulu", "alpha", "mike"}
	got := SortDomains(in)
	if got[0] != "alpha" || got[1] != "mike" || got[2] != "zulu" {
		t.Errorf("SortDomains() = %v", got)
	}
	if in[0] != "zulu" {
		t.Error("SortDomains() mutated its input")
	}
}
