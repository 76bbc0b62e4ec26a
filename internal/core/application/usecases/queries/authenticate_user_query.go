package queries

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

var ErrAuthenticateUserQueryIsNotConstructed = errors.New(
	"AuthenticateUserQuery must be created via NewAuthenticateUserQuery constructor",
)

// AuthenticateUserQuery checks a phone/password pair against the stored
// credential hash.
type AuthenticateUserQuery struct { //nolint:recvcheck //using for validation
	phone    kernel.Phone
	password string

	guard guard.ConstructorGuard
}

// NewAuthenticateUserQuery creates a credential check query.
func NewAuthenticateUserQuery(phone kernel.Phone, password string) (AuthenticateUserQuery, error) {
	if err := phone.Validate(); err != nil {
		return AuthenticateUserQuery{}, err
	}
	if password == "" {
		return AuthenticateUserQuery{}, errs.NewValueIsRequiredError("password")
	}

	return AuthenticateUserQuery{
		phone:    phone,
		password: password,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q AuthenticateUserQuery) Validate() error {
	return q.guard.Validate(ErrAuthenticateUserQueryIsNotConstructed)
}

func (q AuthenticateUserQuery) Phone() kernel.Phone { return q.phone }
func (q AuthenticateUserQuery) Password() string    { return q.password }

// AuthenticatedUser is the read model of a successful credential check,
// carrying what the transport layer needs to mint a session token.
type AuthenticatedUser struct {
	ID   kernel.UUID
	Name string
	Role user.Role
}
