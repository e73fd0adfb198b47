package quotes

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/quote"
)

type CreateQuoteDTO struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	Service       string `json:"service,omitempty"`
	Description   string `json:"description,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	DaysLeft      int    `json:"daysLeft,omitempty"`
}

func (dto CreateQuoteDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.CustomerName == "" {
		return internal.NewValidationError("customerName is required", internal.ErrCodeValidationFailed)
	}
	if dto.Amount < 0 {
		return internal.NewValidationError("amount cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateQuoteDTO struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Service       *string `json:"service,omitempty"`
	Description   *string `json:"description,omitempty"`
	Amount        *int64  `json:"amount,omitempty"`
	Status        *string `json:"status,omitempty"`
	DaysLeft      *int    `json:"daysLeft,omitempty"`
}

func applyQuotePatch(q *quote.Quote, dto UpdateQuoteDTO) {
	if dto.CustomerName != nil {
		q.CustomerName = *dto.CustomerName
	}
	if dto.CustomerEmail != nil {
		q.CustomerEmail = *dto.CustomerEmail
	}
	if dto.Service != nil {
		q.Service = *dto.Service
	}
	if dto.Description != nil {
		q.Description = *dto.Description
	}
	if dto.Amount != nil {
		q.Amount = *dto.Amount
	}
	if dto.Status != nil {
		q.Status = *dto.Status
	}
	if dto.DaysLeft != nil {
		q.DaysLeft = *dto.DaysLeft
	}
}
