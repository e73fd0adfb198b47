package returns

import (
	"github.com/rahayucraft/studio-management/internal"
	returnsmodel "github.com/rahayucraft/studio-management/internal/core/datamodel/returns"
)

type CreateReturnDTO struct {
	ID           int64               `json:"id"`
	OrderNumber  string              `json:"orderNumber"`
	UserID       int64               `json:"userId"`
	CustomerName string              `json:"customerName"`
	Reason       string              `json:"reason,omitempty"`
	Products     []returnsmodel.Item `json:"products"`
	DaysLeft     int                 `json:"daysLeft,omitempty"`
}

func (dto CreateReturnDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.OrderNumber == "" {
		return internal.NewValidationError("orderNumber is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Products) == 0 {
		return internal.NewValidationError("at least one product is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateReturnDTO struct {
	Reason   *string `json:"reason,omitempty"`
	DaysLeft *int    `json:"daysLeft,omitempty"`
}

// RespondDTO is the admin's decision on a pending return.
type RespondDTO struct {
	Approved    bool   `json:"approved"`
	Reason      string `json:"reason"`
	Message     string `json:"message,omitempty"`
	Alternative string `json:"alternative,omitempty"`
}

func (dto RespondDTO) Validate() error {
	if dto.Reason == "" {
		return internal.NewValidationError("reason is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
