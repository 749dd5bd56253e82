package usecase

import (
	"strconv"
	"strings"

	domainErrors "github.com/ivmish/teremok/internal/domain/errors"
)

// maxQuantity caps a single cart line; nothing in the guesthouse shop is
// ordered by the hundred.
const maxQuantity = 99

// ParseQuantity converts user-typed text into a cart quantity.
func ParseQuantity(text string) (int32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, domainErrors.ErrInvalidQuantity
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, domainErrors.ErrInvalidQuantity
	}
	if n < 1 || n > maxQuantity {
		return 0, domainErrors.ErrInvalidQuantity
	}

	return int32(n), nil
}
