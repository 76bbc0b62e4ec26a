package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/core/ports"
	"mparcel/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChannel is a mock implementation of the ports.NotificationChannel
// interface.
type MockChannel struct {
	mock.Mock
	channel ports.Channel
}

func (m *MockChannel) Channel() ports.Channel {
	return m.channel
}

func (m *MockChannel) Send(ctx context.Context, recipient kernel.Phone, message string) error {
	args := m.Called(ctx, recipient, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustPhone(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func newTestEvent(eventType order.EventType) order.Event {
	return order.Event{
		Type:           eventType,
		OrderID:        "ORD-20260115-0001",
		Status:         "Pending",
		CustomerName:   "Alice Wanjiku",
		CustomerPhone:  "254712345678",
		PickupAddress:  "Westlands, Nairobi",
		DropoffAddress: "Kilimani, Nairobi",
		Amount:         500,
		OccurredAt:     time.Now(),
	}
}

func newTestCourier(t *testing.T) *user.User {
	t.Helper()
	courier, err := user.NewUser(
		kernel.NewUUID(), "John Mwangi", mustPhone(t, "254722000111"),
		"$2a$10$hash", user.RoleCourier)
	require.NoError(t, err)
	return courier
}

func newTestAdmin(t *testing.T, phone string) *user.User {
	t.Helper()
	admin, err := user.NewUser(
		kernel.NewUUID(), "Admin", mustPhone(t, phone),
		"$2a$10$hash", user.RoleAdmin)
	require.NoError(t, err)
	return admin
}

func TestDispatcher_Send_PreferredChannelSucceeds(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	sms := &MockChannel{channel: ports.ChannelSMS}
	recipient := mustPhone(t, "254712345678")

	whatsapp.On("Send", mock.Anything, recipient, "hello").Return(nil)

	dispatcher, err := notifications.NewDispatcher(whatsapp, sms, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Send(context.Background(), recipient, "hello")

	// Assert
	require.NoError(t, err)
	whatsapp.AssertExpectations(t)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_Send_FallsBackToSMS(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	sms := &MockChannel{channel: ports.ChannelSMS}
	recipient := mustPhone(t, "254712345678")

	whatsapp.On("Send", mock.Anything, recipient, "hello").Return(errors.New("template not approved"))
	sms.On("Send", mock.Anything, recipient, "hello").Return(nil)

	dispatcher, err := notifications.NewDispatcher(whatsapp, sms, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Send(context.Background(), recipient, "hello")

	// Assert
	require.NoError(t, err)
	whatsapp.AssertExpectations(t)
	sms.AssertExpectations(t)
}

func TestDispatcher_Send_NoFallbackWhenPreferredIsSMS(t *testing.T) {
	// Arrange
	preferredSMS := &MockChannel{channel: ports.ChannelSMS}
	fallbackSMS := &MockChannel{channel: ports.ChannelSMS}
	recipient := mustPhone(t, "254712345678")
	sendErr := errors.New("gateway down")

	preferredSMS.On("Send", mock.Anything, recipient, "hello").Return(sendErr)

	dispatcher, err := notifications.NewDispatcher(preferredSMS, fallbackSMS, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Send(context.Background(), recipient, "hello")

	// Assert
	require.ErrorIs(t, err, sendErr)
	fallbackSMS.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_Send_BothChannelsFail(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	sms := &MockChannel{channel: ports.ChannelSMS}
	recipient := mustPhone(t, "254712345678")
	smsErr := errors.New("gateway down")

	whatsapp.On("Send", mock.Anything, recipient, "hello").Return(errors.New("whatsapp down"))
	sms.On("Send", mock.Anything, recipient, "hello").Return(smsErr)

	dispatcher, err := notifications.NewDispatcher(whatsapp, sms, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Send(context.Background(), recipient, "hello")

	// Assert
	require.ErrorIs(t, err, smsErr)
}

func TestDispatcher_Dispatch_CourierAssignedMessagesBothParties(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	event := newTestEvent(order.EventCourierAssigned)
	event.CourierName = "John Mwangi"
	event.CourierPhone = "254722000111"

	customerPhone := mustPhone(t, event.CustomerPhone)
	courierPhone := mustPhone(t, event.CourierPhone)

	whatsapp.On("Send", mock.Anything, customerPhone, mock.Anything).Return(nil).Once()
	whatsapp.On("Send", mock.Anything, courierPhone, mock.Anything).Return(nil).Once()

	dispatcher, err := notifications.NewDispatcher(whatsapp, nil, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Dispatch(context.Background(), event)

	// Assert
	require.NoError(t, err)
	whatsapp.AssertExpectations(t)

	customerSend := whatsapp.Calls[0]
	assert.Contains(t, customerSend.Arguments[2], "John Mwangi")

	courierSend := whatsapp.Calls[1]
	assert.Contains(t, courierSend.Arguments[2], "Westlands, Nairobi")
	assert.Contains(t, courierSend.Arguments[2], "Alice Wanjiku")
}

func TestDispatcher_Dispatch_CourierBriefingGoesToSMS(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	sms := &MockChannel{channel: ports.ChannelSMS}
	event := newTestEvent(order.EventCourierAssigned)
	event.CourierName = "John Mwangi"
	event.CourierPhone = "254722000111"

	customerPhone := mustPhone(t, event.CustomerPhone)
	courierPhone := mustPhone(t, event.CourierPhone)

	whatsapp.On("Send", mock.Anything, customerPhone, mock.Anything).Return(nil).Once()
	sms.On("Send", mock.Anything, courierPhone, mock.Anything).Return(nil).Once()

	dispatcher, err := notifications.NewDispatcher(whatsapp, sms, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Dispatch(context.Background(), event)

	// Assert
	require.NoError(t, err)
	whatsapp.AssertExpectations(t)
	sms.AssertExpectations(t)
	// the customer copy never lands on sms, the briefing never on whatsapp
	whatsapp.AssertNotCalled(t, "Send", mock.Anything, courierPhone, mock.Anything)
	sms.AssertNotCalled(t, "Send", mock.Anything, customerPhone, mock.Anything)
}

func TestDispatcher_Dispatch_PaymentReconciledIncludesReceipt(t *testing.T) {
	// Arrange
	whatsapp := &MockChannel{channel: ports.ChannelWhatsApp}
	event := newTestEvent(order.EventPaymentReconciled)
	event.MpesaReceipt = "NLJ7RT61SV"

	whatsapp.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dispatcher, err := notifications.NewDispatcher(whatsapp, nil, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Dispatch(context.Background(), event)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, whatsapp.Calls[0].Arguments[2], "NLJ7RT61SV")
}

func TestDispatcher_Dispatch_SendFailurePropagates(t *testing.T) {
	// Arrange
	sms := &MockChannel{channel: ports.ChannelSMS}
	sendErr := errors.New("gateway down")
	sms.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(sendErr)

	dispatcher, err := notifications.NewDispatcher(sms, nil, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Dispatch(context.Background(), newTestEvent(order.EventOrderCreated))

	// Assert
	require.ErrorIs(t, err, sendErr)
}

func TestDispatcher_Dispatch_UnusableCustomerPhoneIsDropped(t *testing.T) {
	// Arrange
	sms := &MockChannel{channel: ports.ChannelSMS}
	event := newTestEvent(order.EventOrderCreated)
	event.CustomerPhone = "garbage"

	dispatcher, err := notifications.NewDispatcher(sms, nil, discardLogger())
	require.NoError(t, err)

	// Act
	err = dispatcher.Dispatch(context.Background(), event)

	// Assert
	require.NoError(t, err)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatcher_BroadcastPanic_CountsDeliveredAlerts(t *testing.T) {
	// Arrange
	sms := &MockChannel{channel: ports.ChannelSMS}
	courier := newTestCourier(t)
	reachable := newTestAdmin(t, "254733000222")
	unreachable := newTestAdmin(t, "254733000333")

	sms.On("Send", mock.Anything, reachable.Phone(), mock.Anything).Return(nil)
	sms.On("Send", mock.Anything, unreachable.Phone(), mock.Anything).Return(errors.New("gateway down"))

	dispatcher, err := notifications.NewDispatcher(sms, nil, discardLogger())
	require.NoError(t, err)

	// Act
	delivered := dispatcher.BroadcastPanic(context.Background(), courier, "tire burst on Mombasa Road",
		[]*user.User{reachable, unreachable})

	// Assert
	assert.Equal(t, 1, delivered)
	alert, ok := sms.Calls[0].Arguments[2].(string)
	require.True(t, ok)
	assert.Contains(t, alert, "John Mwangi")
	assert.Contains(t, alert, "tire burst on Mombasa Road")
	assert.Contains(t, alert, "Location not available")
}

func TestDispatcher_BroadcastPanic_IncludesLastKnownLocation(t *testing.T) {
	// Arrange
	sms := &MockChannel{channel: ports.ChannelSMS}
	courier := newTestCourier(t)
	location, err := kernel.NewGeoLocation(-1.2921, 36.8219)
	require.NoError(t, err)
	require.NoError(t, courier.ReportLocation(location))

	admin := newTestAdmin(t, "254733000222")
	sms.On("Send", mock.Anything, admin.Phone(), mock.Anything).Return(nil)

	dispatcher, err := notifications.NewDispatcher(sms, nil, discardLogger())
	require.NoError(t, err)

	// Act
	delivered := dispatcher.BroadcastPanic(context.Background(), courier, "", []*user.User{admin})

	// Assert
	assert.Equal(t, 1, delivered)
	alert, ok := sms.Calls[0].Arguments[2].(string)
	require.True(t, ok)
	assert.Contains(t, alert, "Location: -1.292100, 36.821900")
}

func TestDispatcher_BroadcastPanic_NoAdmins(t *testing.T) {
	sms := &MockChannel{channel: ports.ChannelSMS}
	dispatcher, err := notifications.NewDispatcher(sms, nil, discardLogger())
	require.NoError(t, err)

	delivered := dispatcher.BroadcastPanic(context.Background(), newTestCourier(t), "", nil)

	assert.Equal(t, 0, delivered)
	sms.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
