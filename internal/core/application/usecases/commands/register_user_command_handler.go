package commands

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"
)

// RegisterUserCommandHandler creates new accounts. Passwords are hashed
// with bcrypt before the aggregate ever sees them.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hashCost   int
}

// NewRegisterUserCommandHandler creates a handler for account registration.
func NewRegisterUserCommandHandler(uowFactory UserUoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hashCost:   bcrypt.DefaultCost,
	}
}

// Handle processes the registration command and returns the new account's
// identifier.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password()), h.hashCost)
	if err != nil {
		return kernel.UUID{}, err
	}

	aggregate, err := user.NewUser(kernel.NewUUID(), cmd.Name(), cmd.Phone(), string(hash), cmd.Role())
	if err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	if _, err = userRepo.GetByPhone(ctx, cmd.Phone()); err == nil {
		return kernel.UUID{}, errs.NewConflictError("phone number is already registered")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	if err = userRepo.Add(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return aggregate.ID(), nil
}
