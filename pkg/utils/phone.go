package utils

import "strings"

// SanitizePhone strips whitespace and a leading plus sign in place so the
// rest of the pipeline only ever sees bare digits or a full JID.
func SanitizePhone(phone *string) {
	if phone == nil {
		return
	}
	cleaned := strings.TrimSpace(*phone)
	cleaned = strings.TrimPrefix(cleaned, "+")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	*phone = cleaned
}

// NormalizeRecipient converts a bare phone identifier into the canonical
// chat-network address. A 10-digit number gets the configured country code
// prefixed, then the user-server suffix is appended. Input that already
// carries a server suffix is returned unchanged, which makes the
// normalization idempotent.
func NormalizeRecipient(phone, countryCode, userSuffix string) string {
	recipient := strings.TrimSpace(phone)
	recipient = strings.TrimPrefix(recipient, "+")
	if strings.Contains(recipient, "@") {
		return recipient
	}
	if len(recipient) == 10 && isDigits(recipient) && countryCode != "" {
		recipient = countryCode + recipient
	}
	return recipient + userSuffix
}

// IsGroupJID reports whether the address belongs to a group chat.
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(jid, "@g.us")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
