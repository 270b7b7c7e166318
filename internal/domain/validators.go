package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// RequireField trims the value and errors if nothing remains.
func RequireField(name, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return v, nil
}

// ParseOptionalDate parses a YYYY-MM-DD form field. Empty input is nil.
func ParseOptionalDate(name, value string) (*time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", name)
	}
	return &t, nil
}

// ParseOptionalExperience parses a years-of-experience form field. Empty
// input is nil; negative values are invalid.
func ParseOptionalExperience(name, value string) (*int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be a whole number", name)
	}
	if n < 0 {
		return nil, fmt.Errorf("%s cannot be negative", name)
	}
	return &n, nil
}

// NormalizePassport upper-cases and trims a passport number. Passports are
// stored and compared in this canonical form.
func NormalizePassport(passport string) string {
	return strings.ToUpper(strings.TrimSpace(passport))
}
