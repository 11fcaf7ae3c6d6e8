package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/allisson/piimask/internal/masking/domain"
)

func TestPiiClassifier(t *testing.T) {
	classifier := NewPiiClassifier()

	tests := []struct {
		name      string
		fieldName string
		value     string
		want      domain.PiiType
	}{
		{"pan by value shape", "document", "ABCDE1234F", domain.PiiTypePanCard},
		{"pan by field name", "pan_number", "whatever", domain.PiiTypePanCard},
		{"pan wins over later rules", "id", "AAAAA1234A", domain.PiiTypePanCard},
		{"phone by value shape", "contact", "9876543210", domain.PiiTypePhone},
		{"phone by field name", "mobile", "not-a-number", domain.PiiTypePhone},
		{"phone by field name variant", "home_phone", "", domain.PiiTypePhone},
		{"aadhar by value shape", "document", "123412341234", domain.PiiTypeAadhar},
		{"cvv by field name", "cvv", "123", domain.PiiTypeCvv},
		{"cvv by field name variant", "card_cvc", "1234", domain.PiiTypeCvv},
		{"cvv by short digit run", "note", "pin is 1234 ok", domain.PiiTypeCvv},
		{"email by value shape", "contact", "john@example.com", domain.PiiTypeEmail},
		{"password by field name", "password", "s3cret", domain.PiiTypePassword},
		{"password by field name variant", "user_pwd", "s3cret", domain.PiiTypePassword},
		{"credit card by field name", "credit_card", "tok_abc", domain.PiiTypeCreditCard},
		{"debit card by field name", "debit_card_number", "tok_abc", domain.PiiTypeCreditCard},
		{"credit card by luhn", "card", "4111111111111111", domain.PiiTypeCreditCard},
		{"luhn failure is custom", "card_ref", "4111111111111112", domain.PiiTypeCustom},
		{"card too short falls through", "number", "4111111111111", domain.PiiTypeCustom},
		{"field name matching is case insensitive", "Email_Password", "x", domain.PiiTypePassword},
		{"plain text is custom", "comment", "hello world", domain.PiiTypeCustom},
		{"empty leaf is custom", "comment", "", domain.PiiTypeCustom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.fieldName, tt.value))
		})
	}
}

func TestIsCardNumber(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"valid visa test number", "4111111111111111", true},
		{"valid mastercard test number", "5555555555554444", true},
		{"valid 14 digit number", "36227206271667", true},
		{"check digit off by one", "4111111111111112", false},
		{"too short", "4111111111111", false},
		{"too long", "4111111111111111111", false},
		{"non-digit characters", "4111-1111-1111-1111", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCardNumber(tt.value))
		})
	}
}
