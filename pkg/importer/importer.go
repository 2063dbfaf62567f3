// Package importer parses credential exports from other password managers
// into domain and password pairs. CSV parsing is header-based, so column
// order in the export does not matter.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Candidate column names, checked in order. The first matching column
// supplies the value.
var (
	domainColumns   = []string{"domain", "url", "name", "title"}
	passwordColumns = []string{"password", "pass"}
)

// ErrNoHeader is returned when the CSV has no usable header row.
var ErrNoHeader = errors.New("importer: missing or unusable CSV header")

// Credential is a single imported domain and password pair.
type Credential struct {
	Domain   string
	Password string
}

// SkippedItem records a row that could not be imported.
type SkippedItem struct {
	Row    int
	Reason string
}

// Result contains the outcome of parsing one export file.
type Result struct {
	Credentials []Credential
	Warnings    []string
	Skipped     []SkippedItem
}

// ParseCSV parses a CSV export. Rows without a domain or password are
// skipped with a reason; duplicate domains keep the first occurrence.
func ParseCSV(data []byte) (*Result, error) {
	result := &Result{
		Credentials: make([]Credential, 0),
		Warnings:    make([]string, 0),
		Skipped:     make([]SkippedItem, 0),
	}

	// Strip UTF-8 BOM if present
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true // handle malformed exports
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoHeader, err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	domainIdx, ok := findColumn(colIndex, domainColumns)
	if !ok {
		return nil, fmt.Errorf("%w: no domain column (tried %s)",
			ErrNoHeader, strings.Join(domainColumns, ", "))
	}
	passwordIdx, ok := findColumn(colIndex, passwordColumns)
	if !ok {
		return nil, fmt.Errorf("%w: no password column (tried %s)",
			ErrNoHeader, strings.Join(passwordColumns, ", "))
	}

	seen := make(map[string]bool)
	rowNum := 1 // header is row 1
	for {
		rowNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("row %d: failed to parse: %v", rowNum, err))
			continue
		}

		domain := normalizeValue(field(row, domainIdx))
		password := field(row, passwordIdx)

		if isEmptyOrWhitespace(domain) {
			result.Skipped = append(result.Skipped,
				SkippedItem{Row: rowNum, Reason: "empty domain"})
			continue
		}
		if password == "" {
			result.Skipped = append(result.Skipped,
				SkippedItem{Row: rowNum, Reason: "empty password"})
			continue
		}
		if seen[domain] {
			result.Skipped = append(result.Skipped,
				SkippedItem{Row: rowNum, Reason: fmt.Sprintf("duplicate domain %q", domain)})
			continue
		}

		seen[domain] = true
		result.Credentials = append(result.Credentials, Credential{
			Domain:   domain,
			Password: password,
		})
	}

	return result, nil
}

// findColumn returns the index of the first candidate present in colIndex.
func findColumn(colIndex map[string]int, candidates []string) (int, bool) {
	for _, name := range candidates {
		if idx, ok := colIndex[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// normalizeValue trims whitespace and applies NFC normalization.
func normalizeValue(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func isEmptyOrWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
