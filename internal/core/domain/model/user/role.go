package user

import (
	"fmt"

	"mparcel/internal/pkg/errs"
)

// Role classifies an account. Merchants create and own orders, couriers
// fulfill them, admins monitor everything and receive panic alerts.
type Role string

const (
	RoleMerchant Role = "merchant"
	RoleCourier  Role = "courier"
	RoleAdmin    Role = "admin"
)

func validRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleMerchant: {},
		RoleCourier:  {},
		RoleAdmin:    {},
	}
}

// RoleFromString parses a role name.
// Returns a ValueIsInvalidError for anything outside the known set.
func RoleFromString(value string) (Role, error) {
	role := Role(value)
	if err := role.Validate(); err != nil {
		return "", err
	}
	return role, nil
}

// Validate checks the role against the known set.
func (r Role) Validate() error {
	if _, ok := validRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}
