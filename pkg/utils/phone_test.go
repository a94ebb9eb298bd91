package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+91 98765 43210", "919876543210"},
		{"  9876543210  ", "9876543210"},
		{"98-76-54-32-10", "9876543210"},
		{"919876543210@s.whatsapp.net", "919876543210@s.whatsapp.net"},
	}
	for _, tc := range tests {
		phone := tc.in
		SanitizePhone(&phone)
		assert.Equal(t, tc.want, phone)
	}

	SanitizePhone(nil)
}

func TestNormalizeRecipient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare ten digits gets country code", "9876543210", "919876543210@s.whatsapp.net"},
		{"already prefixed number", "919876543210", "919876543210@s.whatsapp.net"},
		{"full address unchanged", "919876543210@s.whatsapp.net", "919876543210@s.whatsapp.net"},
		{"group address unchanged", "123456789-987654@g.us", "123456789-987654@g.us"},
		{"leading plus stripped", "+919876543210", "919876543210@s.whatsapp.net"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeRecipient(tc.in, "91", "@s.whatsapp.net"))
		})
	}
}

func TestNormalizeRecipientIsIdempotent(t *testing.T) {
	once := NormalizeRecipient("9876543210", "91", "@s.whatsapp.net")
	twice := NormalizeRecipient(once, "91", "@s.whatsapp.net")
	assert.Equal(t, once, twice)
}

func TestIsGroupJID(t *testing.T) {
	assert.True(t, IsGroupJID("123456789-987654@g.us"))
	assert.False(t, IsGroupJID("919876543210@s.whatsapp.net"))
}
