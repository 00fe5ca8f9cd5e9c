package order

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCardNumber = errors.New("invalid credit card number")
	ErrInvalidExpiry     = errors.New("invalid expiry date format, use MM/YY or MM/YYYY")
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)
)

// ValidatePayment checks the shape of the payment details. No charge is ever
// made; the store only rejects obviously malformed input.
func ValidatePayment(cardNumber, expiryDate string) error {
	stripped := strings.Join(strings.Fields(cardNumber), "")
	if !cardNumberPattern.MatchString(stripped) {
		return ErrInvalidCardNumber
	}
	if !expiryPattern.MatchString(expiryDate) {
		return ErrInvalidExpiry
	}
	return nil
}
