package user

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/errs"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through NewUser or RestoreUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser or RestoreUser")

// User represents an account in the system: a merchant who creates orders,
// a courier who fulfills them, or an admin who monitors the platform.
//
// Invariants:
//   - identity, name, phone, and role are always present and valid
//   - phone is stored in canonical international format (kernel.Phone)
//   - the last known location is optional and only meaningful for couriers
//
// Orders reference users weakly by ID; a User is never owned by an Order.
type User struct {
	id           kernel.UUID
	name         string
	phone        kernel.Phone
	passwordHash string
	role         Role

	// location is the courier's last reported position (nil if never reported)
	location *kernel.GeoLocation

	isConstructed bool
}

// NewUser creates a validated User.
//
// The password hash is stored opaquely; hashing is the registration use
// case's concern, this aggregate only carries the result.
func NewUser(id kernel.UUID, name string, phone kernel.Phone, passwordHash string, role Role) (*User, error) {
	user := &User{
		isConstructed: true,
	}

	if err := errors.Join(
		user.setID(id),
		user.setName(name),
		user.setPhone(phone),
		user.setPasswordHash(passwordHash),
		user.setRole(role),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// RestoreUser reconstructs a User from persistence, including the optional
// last known location.
func RestoreUser(
	id kernel.UUID,
	name string,
	phone kernel.Phone,
	passwordHash string,
	role Role,
	location *kernel.GeoLocation,
) (*User, error) {
	user, err := NewUser(id, name, phone, passwordHash, role)
	if err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		user.location = location
	}

	return user, nil
}

// Validate ensures the User instance was properly constructed.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// IsEqual compares two users by identity.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's identity.
func (u *User) ID() kernel.UUID {
	return u.id
}

// Name returns the display name.
func (u *User) Name() string {
	return u.name
}

// Phone returns the canonical phone number.
func (u *User) Phone() kernel.Phone {
	return u.phone
}

// PasswordHash returns the stored credential hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Role returns the account role.
func (u *User) Role() Role {
	return u.role
}

// IsCourier reports whether the account may be assigned to orders.
func (u *User) IsCourier() bool {
	return u.role == RoleCourier
}

// IsAdmin reports whether the account has platform-wide visibility.
func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

// Location returns the last reported position, or nil if none was reported.
func (u *User) Location() *kernel.GeoLocation {
	return u.location
}

// ReportLocation records the courier's current position.
func (u *User) ReportLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	u.location = &location
	return nil
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	u.phone = phone
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("passwordHash")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
