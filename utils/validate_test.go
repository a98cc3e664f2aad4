package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"a.b+c@sub.domain.org", true},
		{"", false},
		{"no-at-sign", false},
		{"user@nodot", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got != tt.want {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	tests := []struct {
		period string
		want   bool
	}{
		{"2024-01", true},
		{"2024-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"24-01", false},
		{"2024/01", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidatePeriod(tt.period); got != tt.want {
			t.Errorf("ValidatePeriod(%q) = %v, want %v", tt.period, got, tt.want)
		}
	}
}
