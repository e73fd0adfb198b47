package catalog

import (
	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/catalog"
)

type CreateProductDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Status      string `json:"status,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Price < 0 {
		return internal.NewValidationError("price cannot be negative", internal.ErrCodeValidationFailed)
	}
	if dto.Stock < 0 {
		return internal.NewValidationError("stock cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateProductDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	Status      *string `json:"status,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

type CreateSupplierDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (dto CreateSupplierDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateSupplierDTO struct {
	Name        *string `json:"name,omitempty"`
	ContactName *string `json:"contactName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func applyProductPatch(p *catalog.Product, dto UpdateProductDTO) {
	if dto.Name != nil {
		p.Name = *dto.Name
	}
	if dto.Description != nil {
		p.Description = *dto.Description
	}
	if dto.Category != nil {
		p.Category = *dto.Category
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.Stock != nil {
		p.Stock = *dto.Stock
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.ImageURL != nil {
		p.ImageURL = *dto.ImageURL
	}
}

func applySupplierPatch(sp *catalog.Supplier, dto UpdateSupplierDTO) {
	if dto.Name != nil {
		sp.Name = *dto.Name
	}
	if dto.ContactName != nil {
		sp.ContactName = *dto.ContactName
	}
	if dto.Email != nil {
		sp.Email = *dto.Email
	}
	if dto.Phone != nil {
		sp.Phone = *dto.Phone
	}
	if dto.Address != nil {
		sp.Address = *dto.Address
	}
	if dto.Category != nil {
		sp.Category = *dto.Category
	}
	if dto.Status != nil {
		sp.Status = *dto.Status
	}
}
