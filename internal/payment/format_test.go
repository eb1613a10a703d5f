package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full card", "4111111111111111", "4111 1111 1111 1111"},
		{"already spaced", "4111 1111 1111 1111", "4111 1111 1111 1111"},
		{"partial entry", "411111", "4111 11"},
		{"letters stripped", "4111abcd1111", "4111 1111"},
		{"over 16 digits capped", "41111111111111112222", "4111 1111 1111 1111"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCardNumber(tt.in))
		})
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"four digits", "1225", "12/25"},
		{"with slash already", "12/25", "12/25"},
		{"partial month", "1", "1"},
		{"month only", "12", "12"},
		{"three digits", "122", "12/2"},
		{"too long capped", "122534", "12/25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatExpiry(tt.in))
		})
	}
}

func TestFormatRoutingNumber(t *testing.T) {
	assert.Equal(t, "021000021", FormatRoutingNumber("021-000-021"))
	assert.Equal(t, "021000021", FormatRoutingNumber("0210000219999"))
}

func TestValidateCard(t *testing.T) {
	valid := CardDetails{Number: "4111 1111 1111 1111", Expiry: "1225", CVC: "123"}
	assert.NoError(t, ValidateCard(&valid))
	assert.Equal(t, "4111111111111111", valid.Number)
	assert.Equal(t, "12/25", valid.Expiry)

	bad := CardDetails{Number: "4111111111111112", Expiry: "1225", CVC: "123"}
	assert.ErrorIs(t, ValidateCard(&bad), ErrInvalidCardNumber, "luhn check must reject")

	badMonth := CardDetails{Number: "4111111111111111", Expiry: "1325", CVC: "123"}
	assert.ErrorIs(t, ValidateCard(&badMonth), ErrInvalidExpiry)

	badCVC := CardDetails{Number: "4111111111111111", Expiry: "1225", CVC: "12"}
	assert.ErrorIs(t, ValidateCard(&badCVC), ErrInvalidCVC)
}

func TestValidateBank(t *testing.T) {
	valid := BankDetails{RoutingNumber: "021000021", AccountNumber: "12345678"}
	assert.NoError(t, ValidateBank(&valid))

	shortRouting := BankDetails{RoutingNumber: "02100002", AccountNumber: "12345678"}
	assert.ErrorIs(t, ValidateBank(&shortRouting), ErrInvalidRouting)

	shortAccount := BankDetails{RoutingNumber: "021000021", AccountNumber: "123"}
	assert.ErrorIs(t, ValidateBank(&shortAccount), ErrInvalidAccount)
}
