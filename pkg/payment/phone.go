package payment

import (
	"strings"
	"unicode"
)

// FormatPhone normalizes a free-form Kenyan phone number to 254XXXXXXXXX:
// whitespace is stripped, a leading trunk 0 becomes 254, a leading +254
// loses the plus, and a bare subscriber number gets 254 prepended. Anything
// else passes through for the gateway to reject.
func FormatPhone(phone string) string {
	p := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
	switch {
	case strings.HasPrefix(p, "0"):
		return "254" + p[1:]
	case strings.HasPrefix(p, "+254"):
		return p[1:]
	case !strings.HasPrefix(p, "254"):
		return "254" + p
	}
	return p
}
