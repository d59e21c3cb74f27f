package util

import (
	"fmt"
	"regexp"
	"time"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks basic email shape and length.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 255 {
		return fmt.Errorf("email too long")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateName checks a person-name field (2-64 chars).
func ValidateName(field, name string) error {
	if len(name) < 2 {
		return fmt.Errorf("%s must be at least 2 characters", field)
	}
	if len(name) > 64 {
		return fmt.Errorf("%s too long, max 64 characters", field)
	}
	return nil
}

// ValidateSalary rejects negative salaries.
func ValidateSalary(salary float64) error {
	if salary < 0 {
		return fmt.Errorf("salary must not be negative, got %f", salary)
	}
	return nil
}

// ParseHireDate accepts YYYY-MM-DD or RFC3339. Empty input is allowed and
// returns the zero time.
func ParseHireDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid hire date, expected YYYY-MM-DD")
}
