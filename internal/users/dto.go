package users

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/user"
)

// CreateUserDTO carries a caller-supplied id; the store never generates
// ids itself.
type CreateUserDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Document     string `json:"document,omitempty"`
	Address      string `json:"address,omitempty"`
	Role         string `json:"role"`
	Status       string `json:"status,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if !user.ValidRole(dto.Role) {
		return internal.NewValidationError("role must be one of Admin, Employee, Customer, Student", internal.ErrCodeUnknownRole)
	}
	return nil
}

// UpdateUserDTO is a shallow-merge patch: nil fields are left untouched,
// set fields replace the existing value wholesale.
type UpdateUserDTO struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Document     *string `json:"document,omitempty"`
	Address      *string `json:"address,omitempty"`
	Role         *string `json:"role,omitempty"`
	Status       *string `json:"status,omitempty"`
	Orders       *int    `json:"orders,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Role != nil && !user.ValidRole(*dto.Role) {
		return internal.NewValidationError("role must be one of Admin, Employee, Customer, Student", internal.ErrCodeUnknownRole)
	}
	if dto.Status != nil && *dto.Status != user.StatusActive && *dto.Status != user.StatusInactive {
		return internal.NewValidationError("status must be active or inactive", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateRolePermissionsDTO struct {
	Permissions user.PermissionSet `json:"permissions"`
}
