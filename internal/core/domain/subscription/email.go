package subscription

import (
	"net/mail"
	"strings"
)

// Email is a validated subscriber email address. The zero value is invalid;
// obtain one through ParseEmail.
type Email struct {
	value string
}

// ParseEmail validates a raw email address: it must have a non-empty local
// part, an @ symbol and a non-empty host, and parse as a bare RFC 5322
// address (no display name).
func ParseEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, &ValidationError{Message: "subscriber email cannot be empty"}
	}

	at := strings.LastIndex(raw, "@")
	if at < 0 {
		return Email{}, &ValidationError{Message: "subscriber email must contain an @ symbol"}
	}
	if at == 0 {
		return Email{}, &ValidationError{Message: "subscriber email must contain a local part"}
	}
	if at == len(raw)-1 {
		return Email{}, &ValidationError{Message: "subscriber email must contain a host"}
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return Email{}, &ValidationError{Message: "subscriber email is not a valid email address"}
	}

	return Email{value: raw}, nil
}

func (e Email) String() string {
	return e.value
}
