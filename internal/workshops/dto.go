package workshops

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/workshop"
)

type CreateWorkshopDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Date        string `json:"date"`
	Duration    string `json:"duration,omitempty"`
	MaxCapacity int    `json:"maxCapacity"`
	Price       int64  `json:"price"`
}

func (dto CreateWorkshopDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.MaxCapacity <= 0 {
		return internal.NewValidationError("maxCapacity must be positive", internal.ErrCodeValidationFailed)
	}
	if dto.Price < 0 {
		return internal.NewValidationError("price cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateWorkshopDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Instructor  *string `json:"instructor,omitempty"`
	Date        *string `json:"date,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	MaxCapacity *int    `json:"maxCapacity,omitempty"`
	Price       *int64  `json:"price,omitempty"`
}

func (dto UpdateWorkshopDTO) Validate() error {
	if dto.MaxCapacity != nil && *dto.MaxCapacity <= 0 {
		return internal.NewValidationError("maxCapacity must be positive", internal.ErrCodeValidationFailed)
	}
	if dto.Price != nil && *dto.Price < 0 {
		return internal.NewValidationError("price cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

// EnrollmentDTO names the user to enroll and optionally overrides the
// contact snapshot captured at sign-up. Empty fields fall back to the
// user's profile values.
type EnrollmentDTO struct {
	UserID     int64  `json:"userId"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Experience string `json:"experience,omitempty"`
}

func (dto EnrollmentDTO) Validate() error {
	if dto.UserID <= 0 {
		return internal.NewValidationError("userId must be a positive integer", internal.ErrCodeInvalidID)
	}
	return nil
}

func applyWorkshopPatch(w *workshop.Workshop, dto UpdateWorkshopDTO) {
	if dto.Name != nil {
		w.Name = *dto.Name
	}
	if dto.Description != nil {
		w.Description = *dto.Description
	}
	if dto.Instructor != nil {
		w.Instructor = *dto.Instructor
	}
	if dto.Date != nil {
		w.Date = *dto.Date
	}
	if dto.Duration != nil {
		w.Duration = *dto.Duration
	}
	if dto.MaxCapacity != nil {
		w.MaxCapacity = *dto.MaxCapacity
		// Full tracks students == maxCapacity, so a capacity change
		// re-derives the status. Completed stays terminal.
		if w.Status != workshop.StatusCompleted {
			if w.Students == w.MaxCapacity {
				w.Status = workshop.StatusFull
			} else {
				w.Status = workshop.StatusScheduled
			}
		}
	}
	if dto.Price != nil {
		w.Price = *dto.Price
	}
}
