package orders

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/order"
)

type CreateOrderDTO struct {
	ID            int64        `json:"id"`
	OrderNumber   string       `json:"orderNumber,omitempty"`
	UserID        *int64       `json:"userId,omitempty"`
	CustomerName  string       `json:"customerName"`
	CustomerEmail string       `json:"customerEmail,omitempty"`
	Products      []order.Item `json:"products"`
	Status        string       `json:"status,omitempty"`
	Date          string       `json:"date,omitempty"`
	Notes         string       `json:"notes,omitempty"`
}

func (dto CreateOrderDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.CustomerName == "" {
		return internal.NewValidationError("customerName is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Products) == 0 {
		return internal.NewValidationError("at least one line item is required", internal.ErrCodeValidationFailed)
	}
	for _, item := range dto.Products {
		if item.Quantity <= 0 {
			return internal.NewValidationError("line item quantity must be positive", internal.ErrCodeValidationFailed)
		}
		if item.Price < 0 {
			return internal.NewValidationError("line item price cannot be negative", internal.ErrCodeValidationFailed)
		}
	}
	return nil
}

type UpdateOrderDTO struct {
	CustomerName  *string       `json:"customerName,omitempty"`
	CustomerEmail *string       `json:"customerEmail,omitempty"`
	Products      *[]order.Item `json:"products,omitempty"`
	Status        *string       `json:"status,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
}

// Replacing the line items recomputes the total; everything else is a
// straight field overwrite.
func applyOrderPatch(o *order.Order, dto UpdateOrderDTO) {
	if dto.CustomerName != nil {
		o.CustomerName = *dto.CustomerName
	}
	if dto.CustomerEmail != nil {
		o.CustomerEmail = *dto.CustomerEmail
	}
	if dto.Products != nil {
		o.Products = *dto.Products
		o.Total = o.ComputeTotal()
	}
	if dto.Status != nil {
		o.Status = *dto.Status
	}
	if dto.Notes != nil {
		o.Notes = *dto.Notes
	}
}
