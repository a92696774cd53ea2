package validators

import (
	"net/mail"
	"strings"
)

// IsEmailSyntaxValid accepts a bare address, no display name.
func IsEmailSyntaxValid(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == strings.TrimSpace(email) && addr.Name == ""
}
