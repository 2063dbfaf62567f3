package security

import (
	"testing"

	"github.com/pwkeep/pwkeep/pkg/vault"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     Strength
	}{
		{"empty", "", StrengthWeak},
		{"short", "abc123", StrengthWeak},
		{"eight chars", "abcd1234", StrengthFair},
		{"thirteen chars", "abcdefghij123", StrengthFair},
		{"fourteen chars", "abcdefghij1234", StrengthGood},
		{"twenty chars", "abcdefghijklmnop1234", StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Evaluate(tt.password); got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestStrengthString(t *testing.T) {
	if StrengthWeak.String() != "Weak" || StrengthStrong.String() != "Strong" {
		t.Error("unexpected Strength string values")
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	report, err := Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Overall != MaxScore {
		t.Errorf("Overall = %d, want %d", report.Overall, MaxScore)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none", report.Issues)
	}
}

func TestAnalyzeAllStrongUnique(t *testing.T) {
	records := []vault.Credential{
		{Domain: "a.com", Password: "abcdefghijklmnop1234"},
		{Domain: "b.com", Password: "qrstuvwxyz0987654321"},
	}
	report, err := Analyze(records)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Overall != MaxScore {
		t.Errorf("Overall = %d, want %d", report.Overall, MaxScore)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %+v, want none", report.Issues)
	}
}

func TestAnalyzeWeakPassword(t *testing.T) {
	records := []vault.Credential{
		{Domain: "a.com", Password: "short"},
	}
	report, err := Analyze(records)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(report.Issues) != 1 {
		t.Fatalf("len(Issues) = %d, want 1", len(report.Issues))
	}
	if report.Issues[0].Type != IssueWeakPassword {
		t.Errorf("Issues[0].Type = %v, want weak", report.Issues[0].Type)
	}
	if report.Strength != 0 {
		t.Errorf("Strength = %d, want 0", report.Strength)
	}
}

func TestAnalyzeReusedPassword(t *testing.T) {
	records := []vault.Credential{
		{Domain: "b.com", Password: "abcdefghijklmnop1234"},
		{Domain: "a.com", Password: "abcdefghijklmnop1234"},
		{Domain: "c.com", Password: "qrstuvwxyz0987654321"},
	}
	report, err := Analyze(records)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(report.Issues) != 1 {
		t.Fatalf("len(Issues) = %d, want 1: %+v", len(report.Issues), report.Issues)
	}
	issue := report.Issues[0]
	if issue.Type != IssueReusedPassword {
		t.Errorf("Type = %v, want reused", issue.Type)
	}
	if len(issue.Domains) != 2 || issue.Domains[0] != "a.com" || issue.Domains[1] != "b.com" {
		t.Errorf("Domains = %v, want sorted [a.com b.com]", issue.Domains)
	}
	// two digest groups, one unique
	if report.Uniqueness != 12 {
		t.Errorf("Uniqueness = %d, want 12", report.Uniqueness)
	}
}
