package utils

import (
	"regexp"
)

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePeriod 考勤期格式 YYYY-MM
func ValidatePeriod(period string) bool {
	return periodPattern.MatchString(period)
}
