package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// memberIDRegex matches member codes printed on cards and typed at the kiosk
	// Formats: B001, D0042
	memberIDRegex = regexp.MustCompile(`^[A-Z]\d{3,4}$`)
)

// ValidateMemberID validates a member code: one capital letter followed by 3-4 digits
func ValidateMemberID(fl validator.FieldLevel) bool {
	return IsMemberID(fl.Field().String())
}

func IsMemberID(code string) bool {
	return memberIDRegex.MatchString(code)
}
