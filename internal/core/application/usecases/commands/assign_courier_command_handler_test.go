package commands_test

import (
	"testing"
	"time"

	"mparcel/internal/core/application/usecases/commands"
	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/order"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	testOrder := newPendingOrder(t, merchantID, time.Now())
	courier := newTestUser(t, "Brian Otieno", "0722000111", user.RoleCourier)

	cmd, err := commands.NewAssignCourierCommand(testOrder.ID(), courier.ID(), merchantID, user.RoleMerchant)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.MatchedBy(func(e order.Event) bool {
			return e.Type == order.EventCourierAssigned && e.CourierName == "Brian Otieno"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusInTransit, testOrder.Status())
	require.NotNil(t, testOrder.CourierID())
	assert.True(t, testOrder.CourierID().IsEqual(courier.ID()))

	orderRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignCourierCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	handler := commands.NewAssignCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignCourierCommandHandler_Handle_ForeignOrderHidden(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	otherMerchantID := kernel.NewUUID()
	testOrder := newPendingOrder(t, ownerID, time.Now())
	courier := newTestUser(t, "Brian Otieno", "0722000111", user.RoleCourier)

	cmd, err := commands.NewAssignCourierCommand(testOrder.ID(), courier.ID(), otherMerchantID, user.RoleMerchant)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignCourierCommandHandler_Handle_TargetNotACourier(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	testOrder := newPendingOrder(t, merchantID, time.Now())
	notACourier := newTestUser(t, "Grace Njeri", "0733000222", user.RoleMerchant)

	cmd, err := commands.NewAssignCourierCommand(testOrder.ID(), notACourier.ID(), merchantID, user.RoleMerchant)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, notACourier.ID()).Return(notACourier, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignCourierCommandHandler_Handle_TerminalOrderConflict(t *testing.T) {
	ctx := t.Context()
	merchantID := kernel.NewUUID()
	testOrder := newPendingOrder(t, merchantID, time.Now())
	require.NoError(t, testOrder.Cancel())
	courier := newTestUser(t, "Brian Otieno", "0722000111", user.RoleCourier)

	cmd, err := commands.NewAssignCourierCommand(testOrder.ID(), courier.ID(), merchantID, user.RoleAdmin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}
