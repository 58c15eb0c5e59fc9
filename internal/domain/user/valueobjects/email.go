package valueobjects

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

var ErrInvalidEmail = errors.New("invalid email address")

// Email is a lower-cased bare address. Display names are rejected.
type Email struct {
	value string
	at    int
}

func NewEmail(raw string) (*Email, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if addr == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	if len(addr) > maxEmailLength {
		return nil, fmt.Errorf("%w: longer than %d characters", ErrInvalidEmail, maxEmailLength)
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr || parsed.Name != "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, raw)
	}

	at := strings.LastIndexByte(addr, '@')
	if !isASCII(addr[:at]) || !validHost(addr[at+1:]) {
		return nil, fmt.Errorf("%w: bad address %q", ErrInvalidEmail, raw)
	}
	return &Email{value: addr, at: at}, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// validHost wants a dotted ASCII host with a TLD of two or more letters.
func validHost(host string) bool {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" || l[0] == '-' || l[len(l)-1] == '-' {
			return false
		}
		for _, r := range l {
			if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
				return false
			}
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func (e *Email) String() string { return e.value }

func (e *Email) Local() string { return e.value[:e.at] }

func (e *Email) Domain() string { return e.value[e.at+1:] }

func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.value == other.value
}
