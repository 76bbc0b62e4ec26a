package queries

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"
	"mparcel/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthenticateUserQueryHandler verifies login credentials. An unknown
// phone and a wrong password both come back as permission denied so the
// response does not reveal which accounts exist.
type AuthenticateUserQueryHandler struct {
	db *gorm.DB
}

// NewAuthenticateUserQueryHandler creates a handler for credential checks.
func NewAuthenticateUserQueryHandler(db *gorm.DB) AuthenticateUserQueryHandler {
	return AuthenticateUserQueryHandler{db: db}
}

// Handle executes the credential check.
func (h AuthenticateUserQueryHandler) Handle(
	ctx context.Context,
	query AuthenticateUserQuery,
) (AuthenticatedUser, error) {
	if err := query.Validate(); err != nil {
		return AuthenticatedUser{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, name, role, password_hash
		FROM users
		WHERE phone = ?
	`, query.Phone().String()).Row()

	var id uuid.UUID
	var name, role, passwordHash string
	if err := row.Scan(&id, &name, &role, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AuthenticatedUser{}, errs.NewPermissionDeniedError("login")
		}
		return AuthenticatedUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(query.Password())); err != nil {
		return AuthenticatedUser{}, errs.NewPermissionDeniedError("login")
	}

	userID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return AuthenticatedUser{}, err
	}
	userRole, err := user.RoleFromString(role)
	if err != nil {
		return AuthenticatedUser{}, err
	}

	return AuthenticatedUser{ID: userID, Name: name, Role: userRole}, nil
}
