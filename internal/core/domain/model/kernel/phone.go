package kernel

import (
	"fmt"
	"strings"

	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

// CountryCode is the international dialing prefix applied when normalizing
// locally formatted numbers ("07XXXXXXXX" style).
const CountryCode = "254"

// ErrPhoneIsNotConstructed indicates a Phone that was not created via NewPhone.
var ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("Phone must be created via NewPhone")

// Phone is a value object holding a phone number in canonical international
// format without a leading plus, e.g. "254712345678". It is the only phone
// representation stored or compared in the system: payment reconciliation
// correlates gateway callbacks by it and notification channels address
// recipients with it.
//
// Normalization rules (applied once, in the constructor):
//   - surrounding whitespace is removed
//   - a leading "+" is stripped
//   - a leading "0" is replaced with the country code
//   - a bare subscriber number is prefixed with the country code
//   - an already canonical number is left untouched
//
// Normalization is idempotent: NewPhone(p.String()) yields p.
type Phone struct {
	value string

	guard guard.ConstructorGuard
}

// NewPhone normalizes and validates a raw phone number.
// Returns a ValueIsRequiredError for an empty input and a ValueIsInvalidError
// when the normalized form is not a plausible MSISDN (digits only, 10-15 long).
func NewPhone(raw string) (Phone, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Phone{}, errs.NewValueIsRequiredError("phone")
	}

	normalized := normalizeMSISDN(trimmed)

	if !isDigits(normalized) {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q contains non-digit characters", raw))
	}
	if len(normalized) < 10 || len(normalized) > 15 {
		return Phone{}, errs.NewValueIsInvalidErrorWithCause("phone",
			fmt.Errorf("%q normalizes to %d digits", raw, len(normalized)))
	}

	return Phone{
		value: normalized,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func normalizeMSISDN(trimmed string) string {
	switch {
	case strings.HasPrefix(trimmed, "+"):
		return trimmed[1:]
	case strings.HasPrefix(trimmed, CountryCode):
		return trimmed
	case strings.HasPrefix(trimmed, "0"):
		return CountryCode + trimmed[1:]
	default:
		return CountryCode + trimmed
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Validate ensures the Phone was created via NewPhone.
func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

// String returns the canonical international form, e.g. "254712345678".
func (p Phone) String() string {
	return p.value
}

// TailDigits returns the trailing n digits of the number. The payment
// reconciliation heuristic compares the trailing 9 digits, which survive any
// prefix variation the gateway applies.
func (p Phone) TailDigits(n int) string {
	if n >= len(p.value) {
		return p.value
	}
	return p.value[len(p.value)-n:]
}

// IsEqual compares two phones by canonical value.
func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}
