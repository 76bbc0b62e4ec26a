// Package userrepo provides data transfer objects and mapping functions for
// user persistence: merchants, couriers and admins share one table.
package userrepo

import (
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user aggregates.
// The phone number is unique: it is the login identifier and the address
// notifications are sent to.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Phone        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;index"`
	LocationLat  *float64
	LocationLon  *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default naming convention.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(aggregate *user.User) UserDTO {
	dto := UserDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Phone:        aggregate.Phone().String(),
		PasswordHash: aggregate.PasswordHash(),
		Role:         aggregate.Role().String(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Lat()
		lon := location.Lon()
		dto.LocationLat = &lat
		dto.LocationLon = &lon
	}

	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	role, err := user.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoLocation
	if dto.LocationLat != nil && dto.LocationLon != nil {
		loc, locErr := kernel.NewGeoLocation(*dto.LocationLat, *dto.LocationLon)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return user.RestoreUser(id, dto.Name, phone, dto.PasswordHash, role, location)
}
