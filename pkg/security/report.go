package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/pwkeep/pwkeep/pkg/vault"
)

// IssueType identifies the kind of finding.
type IssueType string

const (
	// IssueWeakPassword indicates a password with insufficient strength.
	IssueWeakPassword IssueType = "weak"
	// IssueReusedPassword indicates a password shared by several domains.
	IssueReusedPassword IssueType = "reused"
)

// Issue is a single finding against one or more stored records.
type Issue struct {
	Type        IssueType `json:"type"`
	Domains     []string  `json:"domains"`
	Description string    `json:"description"`
	Suggestion  string    `json:"suggestion"`
}

// Report summarizes the health of a user's stored passwords.
//
// Overall is 0-50: up to 25 points for average strength and 25 for
// uniqueness. Records never leave the process; reuse detection compares
// HMAC digests under a throwaway session key, so no plaintext or stable
// hash of any password is retained.
type Report struct {
	Overall    int     `json:"overall"`
	Strength   int     `json:"strength"`
	Uniqueness int     `json:"uniqueness"`
	Records    int     `json:"records"`
	Issues     []Issue `json:"issues"`
}

// MaxScore is the highest possible Report.Overall value.
const MaxScore = 50

// Analyze builds a health report for the given decrypted records.
func Analyze(records []vault.Credential) (*Report, error) {
	report := &Report{Records: len(records)}
	if len(records) == 0 {
		report.Overall = MaxScore
		report.Strength = 25
		report.Uniqueness = 25
		return report, nil
	}

	sessionKey := make([]byte, 32)
	if _, err := rand.Read(sessionKey); err != nil {
		return nil, fmt.Errorf("security: failed to draw session key: %w", err)
	}

	totalPoints := 0
	byDigest := make(map[string][]string)
	for _, rec := range records {
		strength := Evaluate(rec.Password)
		totalPoints += strength.points()
		if strength == StrengthWeak {
			report.Issues = append(report.Issues, Issue{
				Type:        IssueWeakPassword,
				Domains:     []string{rec.Domain},
				Description: fmt.Sprintf("password for %q is %d characters", rec.Domain, len(rec.Password)),
				Suggestion:  "use a generated password of 14 or more characters",
			})
		}

		mac := hmac.New(sha256.New, sessionKey)
		mac.Write([]byte(rec.Password))
		digest := hex.EncodeToString(mac.Sum(nil))
		byDigest[digest] = append(byDigest[digest], rec.Domain)
	}

	unique := 0
	var reused [][]string
	for _, domains := range byDigest {
		if len(domains) == 1 {
			unique++
			continue
		}
		sort.Strings(domains)
		reused = append(reused, domains)
	}
	sort.Slice(reused, func(i, j int) bool {
		if len(reused[i]) != len(reused[j]) {
			return len(reused[i]) > len(reused[j])
		}
		return reused[i][0] < reused[j][0]
	})
	for _, domains := range reused {
		report.Issues = append(report.Issues, Issue{
			Type:        IssueReusedPassword,
			Domains:     domains,
			Description: fmt.Sprintf("%d domains share one password", len(domains)),
			Suggestion:  "give every domain its own password",
		})
	}

	report.Strength = totalPoints / len(records)
	report.Uniqueness = unique * 25 / len(byDigest)
	report.Overall = report.Strength + report.Uniqueness
	return report, nil
}
