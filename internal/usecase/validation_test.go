package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
)

func TestParseQuantity(t *testing.T) {
	valid := map[string]int32{
		"1":    1,
		" 5 ":  5,
		"99":   99,
		"\t2 ": 2,
	}
	for input, want := range valid {
		got, err := ParseQuantity(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("%q: got %d, want %d", input, got, want)
		}
	}

	invalid := []string{"", "0", "-3", "100", "abc", "1.5", "2 шт"}
	for _, input := range invalid {
		if _, err := ParseQuantity(input); !errors.Is(err, domainErrors.ErrInvalidQuantity) {
			t.Fatalf("%q: expected ErrInvalidQuantity, got %v", input, err)
		}
	}
}
