// Package email validates and normalizes email addresses.
package email

import (
	"net/mail"
	"strings"
)

// Normalize trims surrounding space and lowercases the domain. The local part
// is left as given.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}

// Valid reports whether addr is a bare address with a dotted domain, e.g.
// "a@b.com". Display-name forms like "Ada <a@b.com>" are rejected.
func Valid(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false
	}
	domain := addr[strings.LastIndexByte(addr, '@')+1:]
	return strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}
