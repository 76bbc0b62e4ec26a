package commands

import (
	"errors"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/pkg/errs"
	"mparcel/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a merchant's request to register a new
// delivery order. The order starts Pending and Unpaid; an identifier is
// generated by the handler.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	merchantID     kernel.UUID
	customerName   string
	customerPhone  kernel.Phone
	pickupAddress  string
	dropoffAddress string
	amount         kernel.Money
	metadata       order.Metadata

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// All fields except metadata are required.
func NewCreateOrderCommand(
	merchantID kernel.UUID,
	customerName string,
	customerPhone kernel.Phone,
	pickupAddress string,
	dropoffAddress string,
	amount kernel.Money,
	metadata order.Metadata,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		metadata: metadata,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMerchantID(merchantID),
		cmd.setCustomerName(customerName),
		cmd.setCustomerPhone(customerPhone),
		cmd.setPickupAddress(pickupAddress),
		cmd.setDropoffAddress(dropoffAddress),
		cmd.setAmount(amount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) MerchantID() kernel.UUID     { return c.merchantID }
func (c CreateOrderCommand) CustomerName() string        { return c.customerName }
func (c CreateOrderCommand) CustomerPhone() kernel.Phone { return c.customerPhone }
func (c CreateOrderCommand) PickupAddress() string       { return c.pickupAddress }
func (c CreateOrderCommand) DropoffAddress() string      { return c.dropoffAddress }
func (c CreateOrderCommand) Amount() kernel.Money        { return c.amount }
func (c CreateOrderCommand) Metadata() order.Metadata    { return c.metadata }

func (c *CreateOrderCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	c.merchantID = merchantID
	return nil
}

func (c *CreateOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	c.customerName = customerName
	return nil
}

func (c *CreateOrderCommand) setCustomerPhone(customerPhone kernel.Phone) error {
	if err := customerPhone.Validate(); err != nil {
		return err
	}
	c.customerPhone = customerPhone
	return nil
}

func (c *CreateOrderCommand) setPickupAddress(pickupAddress string) error {
	if pickupAddress == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	c.pickupAddress = pickupAddress
	return nil
}

func (c *CreateOrderCommand) setDropoffAddress(dropoffAddress string) error {
	if dropoffAddress == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	c.dropoffAddress = dropoffAddress
	return nil
}

func (c *CreateOrderCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}
