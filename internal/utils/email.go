package utils

import (
	"strings"
)

// EmailAddress is a parsed mail header address.
type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ParseEmailAddress parses a raw header-style address in one of three shapes:
// "Display Name <addr>", "<addr>" or a bare "addr". It never fails: malformed
// input still yields a best-effort result, since inbound headers cannot be
// rejected outright. An empty string parses to an empty address.
func ParseEmailAddress(raw string) EmailAddress {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return EmailAddress{}
	}

	open := strings.LastIndex(raw, "<")
	close := strings.LastIndex(raw, ">")
	if open >= 0 && close > open {
		email := strings.TrimSpace(raw[open+1 : close])
		name := strings.TrimSpace(raw[:open])
		if name == "" {
			name = localPart(email)
		}
		return EmailAddress{Email: email, Name: name}
	}

	return EmailAddress{Email: raw, Name: localPart(raw)}
}

// ParseEmailAddresses parses a list of raw header-style addresses, keeping order.
func ParseEmailAddresses(raw []string) []EmailAddress {
	if len(raw) == 0 {
		return nil
	}
	parsed := make([]EmailAddress, 0, len(raw))
	for _, addr := range raw {
		parsed = append(parsed, ParseEmailAddress(addr))
	}
	return parsed
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// ExtractDomainFromEmail returns the lowercased domain of an address, or ""
// when the input has no usable domain.
func ExtractDomainFromEmail(email string) string {
	if email == "" {
		return ""
	}

	// Remove any potential surrounding whitespace
	email = strings.TrimSpace(email)

	// Handle potential angle brackets in email (e.g., "Name <email@domain.com>")
	if strings.Contains(email, "<") && strings.Contains(email, ">") {
		startIdx := strings.LastIndex(email, "<") + 1
		endIdx := strings.LastIndex(email, ">")
		if startIdx > 0 && endIdx > startIdx {
			email = email[startIdx:endIdx]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	domain := strings.TrimSpace(parts[1])

	domain = strings.ToLower(domain)

	return domain
}
