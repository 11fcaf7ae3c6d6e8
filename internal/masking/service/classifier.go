package service

import (
	"regexp"
	"strings"

	"github.com/allisson/piimask/internal/masking/domain"
)

// Value-shape patterns. Phone and Aadhaar anchor the whole value so longer
// digit runs (card numbers) fall through to the Luhn rule.
var (
	panValueRe    = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
	phoneValueRe  = regexp.MustCompile(`^\d{10}$`)
	aadharValueRe = regexp.MustCompile(`^\d{12}$`)
	cvvRunRe      = regexp.MustCompile(`\b\d{2,4}\b`)
	emailValueRe  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// PiiClassifier detects likely PII from a field name and its string value
// using key-name hints and value-shape heuristics. Rules are evaluated in a
// fixed order and the first match wins; an unmatched leaf is custom.
//
// The CVV digit-run clause is deliberately broad: any standalone run of 2-4
// digits anywhere in the value classifies as cvv. Most numeric-bearing free
// text trips it. That is long-standing engine behavior that callers depend
// on for aggressive masking, so it stays.
type PiiClassifier struct{}

// NewPiiClassifier creates a stateless PII classifier.
func NewPiiClassifier() *PiiClassifier {
	return &PiiClassifier{}
}

// Classify returns the PII category for the field name and value. Field
// name matching is case-insensitive substring containment; value matching
// uses the shape patterns above. Never fails.
func (c *PiiClassifier) Classify(fieldName, value string) domain.PiiType {
	name := strings.ToLower(fieldName)

	switch {
	case panValueRe.MatchString(value) || strings.Contains(name, "pan"):
		return domain.PiiTypePanCard
	case phoneValueRe.MatchString(value) || containsAny(name, "mobile", "phone"):
		return domain.PiiTypePhone
	case aadharValueRe.MatchString(value):
		return domain.PiiTypeAadhar
	case containsAny(name, "cvv", "cvc", "cvn", "cid") || cvvRunRe.MatchString(value):
		return domain.PiiTypeCvv
	case emailValueRe.MatchString(value):
		return domain.PiiTypeEmail
	case containsAny(name, "password", "pwd", "passphrase"):
		return domain.PiiTypePassword
	case containsAny(name, "credit", "debit") || isCardNumber(value):
		return domain.PiiTypeCreditCard
	default:
		return domain.PiiTypeCustom
	}
}

// containsAny reports whether s contains any of the substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// isCardNumber reports whether the value is a card-like number: 14 to 18
// digits passing the Luhn checksum.
func isCardNumber(value string) bool {
	if len(value) < 14 || len(value) > 18 {
		return false
	}

	digits := make([]int, len(value))
	for i, r := range value {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
	}

	return validateLuhn(digits)
}

// validateLuhn validates a complete number (including check digit) using the
// Luhn algorithm: right to left, double every second digit and subtract 9
// when the doubled value exceeds 9; valid iff the sum is divisible by 10.
func validateLuhn(digits []int) bool {
	sum := 0
	length := len(digits)

	for i := 0; i < length; i++ {
		digit := digits[length-1-i]

		if i%2 == 1 {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
	}

	return sum%10 == 0
}
