package order

import (
	"errors"
	"fmt"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a delivery. It carries two independent
// state axes (delivery Status, PaymentStatus), a weak reference to the
// assigned courier, and an immutable reference to the owning merchant.
//
// Invariants enforced here:
//   - the identifier and owning merchant never change after creation
//   - status transitions follow the central table in status.go
//   - Delivered and Cancelled lock the order against all mutation
//   - a courier reference can only be attached through Assign
//   - payment marking never downgrades a settled payment
type Order struct {
	id OrderID

	customerName  string
	customerPhone kernel.Phone

	pickupAddress  string
	dropoffAddress string

	amount kernel.Money

	status        Status
	paymentStatus PaymentStatus

	// courierID is the assigned courier (nil if unassigned)
	courierID *kernel.UUID

	// merchantID is the owning merchant, set once at creation
	merchantID kernel.UUID

	deliveryProof string
	mpesaReceipt  string

	// checkoutRequestID correlates the STK push with its asynchronous
	// callback; empty until a payment is initiated for this order
	checkoutRequestID string

	metadata Metadata

	deliveredAt *time.Time
	createdAt   time.Time

	isConstructed bool
}

// NewOrder creates a new order in Pending/Unpaid state.
// All customer and address fields are required; the amount must be positive.
func NewOrder(
	id OrderID,
	customerName string,
	customerPhone kernel.Phone,
	pickupAddress string,
	dropoffAddress string,
	amount kernel.Money,
	merchantID kernel.UUID,
	metadata Metadata,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentUnpaid,
		metadata:      metadata,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setCustomerPhone(customerPhone),
		o.setPickupAddress(pickupAddress),
		o.setDropoffAddress(dropoffAddress),
		o.setAmount(amount),
		o.setMerchantID(merchantID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running the
// creation transitions. Statuses are validated but accepted as stored.
func RestoreOrder(
	id OrderID,
	customerName string,
	customerPhone kernel.Phone,
	pickupAddress string,
	dropoffAddress string,
	amount kernel.Money,
	status Status,
	paymentStatus PaymentStatus,
	courierID *kernel.UUID,
	merchantID kernel.UUID,
	deliveryProof string,
	mpesaReceipt string,
	checkoutRequestID string,
	metadata Metadata,
	deliveredAt *time.Time,
	createdAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerName, customerPhone, pickupAddress, dropoffAddress,
		amount, merchantID, metadata, createdAt)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.paymentStatus = paymentStatus
	o.courierID = courierID
	o.deliveryProof = deliveryProof
	o.mpesaReceipt = mpesaReceipt
	o.checkoutRequestID = checkoutRequestID
	o.deliveredAt = deliveredAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() OrderID { return o.id }

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string { return o.customerName }

// CustomerPhone returns the recipient's canonical phone number.
func (o *Order) CustomerPhone() kernel.Phone { return o.customerPhone }

// PickupAddress returns the collection address.
func (o *Order) PickupAddress() string { return o.pickupAddress }

// DropoffAddress returns the delivery address.
func (o *Order) DropoffAddress() string { return o.dropoffAddress }

// Amount returns the order value.
func (o *Order) Amount() kernel.Money { return o.amount }

// Status returns the delivery lifecycle state.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the payment axis state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// CourierID returns the assigned courier, or nil when unassigned.
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// MerchantID returns the owning merchant.
func (o *Order) MerchantID() kernel.UUID { return o.merchantID }

// DeliveryProof returns the stored proof reference (storage path), if any.
func (o *Order) DeliveryProof() string { return o.deliveryProof }

// MpesaReceipt returns the gateway receipt stored at reconciliation, if any.
func (o *Order) MpesaReceipt() string { return o.mpesaReceipt }

// CheckoutRequestID returns the gateway correlation key stored at payment
// initiation, if any.
func (o *Order) CheckoutRequestID() string { return o.checkoutRequestID }

// Metadata returns the optional typed attributes.
func (o *Order) Metadata() Metadata { return o.metadata }

// DeliveredAt returns the delivery confirmation time, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CreatedAt returns the creation time. Reconciliation uses it to break ties
// between heuristic candidates.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// IsOwnedBy reports whether the given merchant owns the order.
func (o *Order) IsOwnedBy(merchantID kernel.UUID) bool {
	return o.merchantID.IsEqual(merchantID)
}

// IsAssignedTo reports whether the given courier is the one assigned.
func (o *Order) IsAssignedTo(courierID kernel.UUID) bool {
	return o.courierID != nil && o.courierID.IsEqual(courierID)
}

// ensureMutable rejects mutation of a terminal order with a ConflictError.
func (o *Order) ensureMutable() error {
	if o.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s is already %s and cannot be modified", o.id, o.status))
	}
	return nil
}

// Assign attaches a courier and moves the order to InTransit. The caller is
// responsible for having verified the courier role; this aggregate only
// enforces the status transition.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if o.status != StatusInTransit {
		next, err := o.status.Transition(StatusInTransit)
		if err != nil {
			return err
		}
		o.status = next
	}
	o.courierID = &courierID
	return nil
}

// ClearCourier removes the assigned courier. An InTransit order downgrades
// back to Pending; a Pending order just drops the reference.
func (o *Order) ClearCourier() error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if o.status == StatusInTransit {
		next, err := o.status.Transition(StatusPending)
		if err != nil {
			return err
		}
		o.status = next
	}
	o.courierID = nil
	return nil
}

// Cancel moves the order to the terminal Cancelled state. Cancelling an order
// that is already Delivered or Cancelled fails with a ConflictError.
func (o *Order) Cancel() error {
	if o.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s is already %s and cannot be cancelled", o.id, o.status))
	}
	next, err := o.status.Transition(StatusCancelled)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Deliver confirms delivery: terminal Delivered state, delivery timestamp,
// and proof reference. If no payment has settled yet the payment axis
// defaults to Paid, since cash on delivery is the platform's fallback model.
// A gateway-reconciled payment and its receipt are never overwritten.
func (o *Order) Deliver(proofRef string, at time.Time) error {
	next, err := o.status.Transition(StatusDelivered)
	if err != nil {
		return err
	}
	o.status = next
	o.deliveryProof = proofRef
	o.deliveredAt = &at

	if !o.paymentStatus.IsSettled() {
		o.paymentStatus = PaymentPaid
	}
	return nil
}

// MarkPaid records a settled gateway payment with its receipt. Marking an
// already settled order fails with a ConflictError; the persistence layer
// additionally enforces this with a conditional update so concurrent
// duplicate callbacks cannot double-credit.
func (o *Order) MarkPaid(receipt string) error {
	if o.paymentStatus.IsSettled() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s payment is already %s", o.id, o.paymentStatus))
	}
	o.paymentStatus = PaymentPaid
	o.mpesaReceipt = receipt
	return nil
}

// Reconcile settles the payment against a gateway receipt. Unlike MarkPaid
// it records that the money was confirmed by the payment provider, not just
// collected by hand.
func (o *Order) Reconcile(receipt string) error {
	if o.paymentStatus.IsSettled() {
		return errs.NewConflictError(
			fmt.Sprintf("order %s payment is already %s", o.id, o.paymentStatus))
	}
	if receipt == "" {
		return errs.NewValueIsRequiredError("receipt")
	}
	o.paymentStatus = PaymentReconciled
	o.mpesaReceipt = receipt
	return nil
}

// AttachCheckoutRequest stores the gateway correlation key issued at STK
// initiation. Later callbacks match on it before falling back to heuristics.
func (o *Order) AttachCheckoutRequest(checkoutRequestID string) error {
	if checkoutRequestID == "" {
		return errs.NewValueIsRequiredError("checkoutRequestId")
	}
	o.checkoutRequestID = checkoutRequestID
	return nil
}

// SetCustomerName updates the recipient's name on a non-terminal order.
func (o *Order) SetCustomerName(name string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setCustomerName(name)
}

// SetCustomerPhone updates the recipient's phone on a non-terminal order.
func (o *Order) SetCustomerPhone(phone kernel.Phone) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setCustomerPhone(phone)
}

// SetPickupAddress updates the collection address on a non-terminal order.
func (o *Order) SetPickupAddress(address string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setPickupAddress(address)
}

// SetDropoffAddress updates the delivery address on a non-terminal order.
func (o *Order) SetDropoffAddress(address string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setDropoffAddress(address)
}

// SetAmount updates the order value on a non-terminal order.
func (o *Order) SetAmount(amount kernel.Money) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	return o.setAmount(amount)
}

// SetDeliveryProof stores a proof reference on a non-terminal order. The
// courier cancel path uses it; Deliver stores its own proof directly.
func (o *Order) SetDeliveryProof(proofRef string) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	o.deliveryProof = proofRef
	return nil
}

// MergeMetadata overlays the non-empty fields of the patch onto the stored
// metadata of a non-terminal order.
func (o *Order) MergeMetadata(patch Metadata) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	o.metadata = o.metadata.Merge(patch)
	return nil
}

func (o *Order) setID(id OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setCustomerPhone(phone kernel.Phone) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	o.customerPhone = phone
	return nil
}

func (o *Order) setPickupAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("pickupAddress")
	}
	o.pickupAddress = address
	return nil
}

func (o *Order) setDropoffAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("dropoffAddress")
	}
	o.dropoffAddress = address
	return nil
}

func (o *Order) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	o.amount = amount
	return nil
}

func (o *Order) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}
	o.merchantID = merchantID
	return nil
}
