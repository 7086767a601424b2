package domain

import (
	"errors"
	"testing"
)

func TestParseEmailAddress(t *testing.T) {
	valid := []string{
		"testingg@gmail.com",
		"ursula_le_guin@gmail.com",
		"first.last+tag@sub.example.co.uk",
	}
	for _, raw := range valid {
		addr, err := ParseEmailAddress(raw)
		if err != nil {
			t.Errorf("ParseEmailAddress(%q) error: %v", raw, err)
			continue
		}
		if addr.String() != raw {
			t.Errorf("String() = %q, want %q", addr.String(), raw)
		}
	}

	invalid := []string{
		"",
		" ",
		"gmail.rs",
		"@missing-local.com",
		"missing-domain@",
		"two@@example.com",
		"spaces in@example.com",
	}
	for _, raw := range invalid {
		if _, err := ParseEmailAddress(raw); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("ParseEmailAddress(%q) error = %v, want ErrInvalidEmail", raw, err)
		}
	}
}
