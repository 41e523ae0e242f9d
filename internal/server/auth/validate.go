package auth

import (
	"regexp"
	"strings"
)

// PasswordSymbols is the fixed set a strong password must draw at least one
// symbol from.
const PasswordSymbols = "#@$%&*!^"

const minPasswordLength = 8

var (
	emailPattern   = regexp.MustCompile(`^(.+)@(.+)$`)
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// IsValidEmail reports whether s is email shaped: something@something.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidContactNumber reports whether s is exactly 10 digits.
func IsValidContactNumber(s string) bool {
	return contactPattern.MatchString(s)
}

// IsValidPincode reports whether s is exactly 6 digits.
func IsValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

// IsStrongPassword checks the password policy: at least 8 characters, at
// least one digit, one lowercase letter, one uppercase letter and one symbol
// from PasswordSymbols, and no whitespace anywhere.
//
// Length is counted in UTF-16 code units, so a character outside the BMP
// counts twice. Only ASCII whitespace (space, \t, \n, \v, \f, \r) is
// rejected as whitespace; U+0085, U+2028 and U+2029 are rejected as line
// terminators. Other Unicode spaces such as U+00A0 are ordinary characters.
func IsStrongPassword(s string) bool {
	var units int
	var digit, lower, upper, symbol bool
	for _, r := range s {
		switch {
		case strings.ContainsRune(" \t\n\v\f\r\u0085\u2028\u2029", r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
		units++
		if r > 0xFFFF {
			units++
		}
	}
	return units >= minPasswordLength && digit && lower && upper && symbol
}
