package employees

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/employee"
)

type CreateEmployeeDTO struct {
	ID               int64                     `json:"id"`
	Name             string                    `json:"name"`
	Email            string                    `json:"email"`
	Phone            string                    `json:"phone,omitempty"`
	Document         string                    `json:"document,omitempty"`
	Address          string                    `json:"address,omitempty"`
	Position         string                    `json:"position,omitempty"`
	Salary           int64                     `json:"salary,omitempty"`
	Schedule         string                    `json:"schedule,omitempty"`
	HireDate         string                    `json:"hireDate,omitempty"`
	EmergencyContact employee.EmergencyContact `json:"emergencyContact,omitempty"`
	Certifications   []string                  `json:"certifications,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if dto.Salary < 0 {
		return internal.NewValidationError("salary cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Name             *string                    `json:"name,omitempty"`
	Email            *string                    `json:"email,omitempty"`
	Phone            *string                    `json:"phone,omitempty"`
	Document         *string                    `json:"document,omitempty"`
	Address          *string                    `json:"address,omitempty"`
	Position         *string                    `json:"position,omitempty"`
	Salary           *int64                     `json:"salary,omitempty"`
	Schedule         *string                    `json:"schedule,omitempty"`
	HireDate         *string                    `json:"hireDate,omitempty"`
	Status           *string                    `json:"status,omitempty"`
	EmergencyContact *employee.EmergencyContact `json:"emergencyContact,omitempty"`
	Certifications   *[]string                  `json:"certifications,omitempty"`
}

// Nested objects are replaced wholesale, never deep-merged.
func applyEmployeePatch(e *employee.Employee, dto UpdateEmployeeDTO) {
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.Email != nil {
		e.Email = *dto.Email
	}
	if dto.Phone != nil {
		e.Phone = *dto.Phone
	}
	if dto.Document != nil {
		e.Document = *dto.Document
	}
	if dto.Address != nil {
		e.Address = *dto.Address
	}
	if dto.Position != nil {
		e.Position = *dto.Position
	}
	if dto.Salary != nil {
		e.Salary = *dto.Salary
	}
	if dto.Schedule != nil {
		e.Schedule = *dto.Schedule
	}
	if dto.HireDate != nil {
		e.HireDate = *dto.HireDate
	}
	if dto.Status != nil {
		e.Status = *dto.Status
	}
	if dto.EmergencyContact != nil {
		e.EmergencyContact = *dto.EmergencyContact
	}
	if dto.Certifications != nil {
		e.Certifications = *dto.Certifications
	}
}
