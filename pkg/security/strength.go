// Package security analyzes decrypted records for weak and reused
// passwords and condenses the findings into a health report.
package security

// Strength represents the strength level of a stored password.
type Strength int

const (
	// StrengthWeak indicates an insecure password (less than 8 characters).
	StrengthWeak Strength = iota
	// StrengthFair indicates a minimally acceptable password.
	StrengthFair
	// StrengthGood indicates a good password.
	StrengthGood
	// StrengthStrong indicates a strong password.
	StrengthStrong
)

// String returns a human-readable representation of the strength.
func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthFair:
		return "Fair"
	case StrengthGood:
		return "Good"
	case StrengthStrong:
		return "Strong"
	default:
		return "Unknown"
	}
}

// points returns the score contribution for this strength level.
// Weak=0, Fair=8, Good=17, Strong=25.
func (s Strength) points() int {
	switch s {
	case StrengthFair:
		return 8
	case StrengthGood:
		return 17
	case StrengthStrong:
		return 25
	default:
		return 0
	}
}

// Evaluate rates a password. Length is the primary factor per NIST SP
// 800-63B: no composition requirements, focus on length alone.
func Evaluate(password string) Strength {
	switch length := len(password); {
	case length >= 20:
		return StrengthStrong
	case length >= 14:
		return StrengthGood
	case length >= 8:
		return StrengthFair
	default:
		return StrengthWeak
	}
}
