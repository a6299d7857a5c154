package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmailAddress(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected EmailAddress
	}{
		{
			name:     "display name with address",
			raw:      "John Doe <john@example.com>",
			expected: EmailAddress{Email: "john@example.com", Name: "John Doe"},
		},
		{
			name:     "angle brackets without name",
			raw:      "<john@example.com>",
			expected: EmailAddress{Email: "john@example.com", Name: "john"},
		},
		{
			name:     "bare address",
			raw:      "john@example.com",
			expected: EmailAddress{Email: "john@example.com", Name: "john"},
		},
		{
			name:     "empty input",
			raw:      "",
			expected: EmailAddress{},
		},
		{
			name:     "surrounding whitespace",
			raw:      "  Jane Roe <jane@example.com>  ",
			expected: EmailAddress{Email: "jane@example.com", Name: "Jane Roe"},
		},
		{
			name:     "angle bracket inside display name",
			raw:      "Weird <Name <weird@example.com>",
			expected: EmailAddress{Email: "weird@example.com", Name: "Weird <Name"},
		},
		{
			name:     "no at sign",
			raw:      "not-an-address",
			expected: EmailAddress{Email: "not-an-address", Name: "not-an-address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseEmailAddress(tt.raw))
		})
	}
}

func TestParseEmailAddresses_KeepsOrder(t *testing.T) {
	parsed := ParseEmailAddresses([]string{"a@example.com", "B <b@example.com>"})

	assert.Len(t, parsed, 2)
	assert.Equal(t, "a@example.com", parsed[0].Email)
	assert.Equal(t, "b@example.com", parsed[1].Email)
	assert.Equal(t, "B", parsed[1].Name)
}

func TestParseEmailAddresses_Empty(t *testing.T) {
	assert.Nil(t, ParseEmailAddresses(nil))
}

func TestExtractDomainFromEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "plain address", email: "john@Example.COM", expected: "example.com"},
		{name: "with display name", email: "John <john@example.com>", expected: "example.com"},
		{name: "no domain", email: "john", expected: ""},
		{name: "empty", email: "", expected: ""},
		{name: "multiple at signs", email: "a@b@c", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractDomainFromEmail(tt.email))
		})
	}
}
