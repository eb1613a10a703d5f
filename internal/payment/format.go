package payment

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidExpiry     = errors.New("invalid expiry")
	ErrInvalidCVC        = errors.New("invalid cvc")
	ErrInvalidRouting    = errors.New("invalid routing number")
	ErrInvalidAccount    = errors.New("invalid account number")
)

// digits strips every non-digit rune.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCardNumber groups card digits into 4-digit blocks, capped at 16
// digits. "4111111111111111" renders as "4111 1111 1111 1111".
func FormatCardNumber(raw string) string {
	d := digits(raw)
	if len(d) > 16 {
		d = d[:16]
	}
	var groups []string
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		groups = append(groups, d[i:end])
	}
	return strings.Join(groups, " ")
}

// FormatExpiry renders raw expiry digits as MM/YY. "1225" renders as "12/25".
func FormatExpiry(raw string) string {
	d := digits(raw)
	if len(d) > 4 {
		d = d[:4]
	}
	if len(d) <= 2 {
		return d
	}
	return d[:2] + "/" + d[2:]
}

// FormatCVC keeps at most 4 digits.
func FormatCVC(raw string) string {
	d := digits(raw)
	if len(d) > 4 {
		d = d[:4]
	}
	return d
}

// FormatRoutingNumber keeps at most 9 digits.
func FormatRoutingNumber(raw string) string {
	d := digits(raw)
	if len(d) > 9 {
		d = d[:9]
	}
	return d
}

// CardDetails normalized card input
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVC    string `json:"cvc"`
	Name   string `json:"name"`
}

// BankDetails normalized bank account input
type BankDetails struct {
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
}

// ValidateCard normalizes and validates card details in place.
func ValidateCard(c *CardDetails) error {
	c.Number = digits(c.Number)
	if len(c.Number) < 12 || len(c.Number) > 16 || !luhnValid(c.Number) {
		return ErrInvalidCardNumber
	}

	c.Expiry = FormatExpiry(c.Expiry)
	if len(c.Expiry) != 5 {
		return ErrInvalidExpiry
	}
	month := c.Expiry[:2]
	if month < "01" || month > "12" {
		return ErrInvalidExpiry
	}

	c.CVC = digits(c.CVC)
	if len(c.CVC) < 3 || len(c.CVC) > 4 {
		return ErrInvalidCVC
	}
	return nil
}

// ValidateBank normalizes and validates bank details in place.
func ValidateBank(b *BankDetails) error {
	b.RoutingNumber = digits(b.RoutingNumber)
	if len(b.RoutingNumber) != 9 {
		return ErrInvalidRouting
	}
	b.AccountNumber = digits(b.AccountNumber)
	if len(b.AccountNumber) < 4 || len(b.AccountNumber) > 17 {
		return ErrInvalidAccount
	}
	return nil
}

// luhnValid runs the Luhn checksum over a digit string.
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
