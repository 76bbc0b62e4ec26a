package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/guard"
)

var ErrTriggerPanicCommandIsNotConstructed = errors.New(
	"TriggerPanicCommand must be created via NewTriggerPanicCommand constructor",
)

// TriggerPanicCommand represents a courier's emergency alert. The optional
// message lets the courier describe the situation in their own words; the
// optional location is the courier's current position, forwarded to admins
// and stored as the courier's last known position.
type TriggerPanicCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	message   string
	location  *kernel.GeoLocation

	guard guard.ConstructorGuard
}

// NewTriggerPanicCommand creates a command to raise an emergency alert on
// behalf of a courier. Pass nil as location when the device could not
// provide one.
func NewTriggerPanicCommand(
	courierID kernel.UUID,
	message string,
	location *kernel.GeoLocation,
) (TriggerPanicCommand, error) {
	if err := courierID.Validate(); err != nil {
		return TriggerPanicCommand{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return TriggerPanicCommand{}, err
		}
	}

	return TriggerPanicCommand{
		courierID: courierID,
		message:   message,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TriggerPanicCommand) Validate() error {
	return c.guard.Validate(ErrTriggerPanicCommandIsNotConstructed)
}

func (c TriggerPanicCommand) CourierID() kernel.UUID        { return c.courierID }
func (c TriggerPanicCommand) Message() string               { return c.message }
func (c TriggerPanicCommand) Location() *kernel.GeoLocation { return c.location }
