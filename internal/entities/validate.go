package entities

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonDigitRe = regexp.MustCompile(`\D`)
	alnumRe    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Validate applies the type-specific check for the given entity value.
// Types without a registered validator are always considered valid.
func Validate(entityType, value string) bool {
	switch entityType {
	case "email":
		return emailRe.MatchString(value)
	case "phone":
		return validatePhone(value)
	case "order_number":
		return validateOrderNumber(value)
	case "amount":
		return validateAmount(value)
	default:
		return true
	}
}

// validatePhone accepts US numbers: 10 digits, or 11 with the country code.
func validatePhone(value string) bool {
	digits := nonDigitRe.ReplaceAllString(value, "")
	return len(digits) == 10 || len(digits) == 11
}

func validateOrderNumber(value string) bool {
	return len(value) >= 6 && alnumRe.MatchString(value)
}

func validateAmount(value string) bool {
	_, err := strconv.ParseFloat(strings.TrimPrefix(value, "$"), 64)
	return err == nil
}
