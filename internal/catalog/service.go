package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/core/datamodel/catalog"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

// Service owns the product catalog and the supplier directory. The two
// collections share a package because they share a lifecycle: plain CRUD
// with no cross-entity effects.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) ListProducts(ctx context.Context) []catalog.Product {
	var out []catalog.Product
	s.store.View(func(st *store.State) {
		out = append([]catalog.Product{}, st.Products...)
	})
	return out
}

func (s *Service) GetProduct(ctx context.Context, id int64) (catalog.Product, internal.Outcome) {
	var (
		found   catalog.Product
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if p := st.FindProduct(id); p != nil {
			found = *p
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) CreateProduct(ctx context.Context, dto CreateProductDTO) (catalog.Product, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("product validation failed", "error", err, "product_id", dto.ID)
		return catalog.Product{}, err
	}

	var (
		created   catalog.Product
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindProduct(dto.ID) != nil {
			duplicate = true
			return nil
		}
		status := dto.Status
		if status == "" {
			status = catalog.ProductStatusActive
		}
		created = catalog.Product{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
			Category:    dto.Category,
			Price:       dto.Price,
			Stock:       dto.Stock,
			Status:      status,
			ImageURL:    dto.ImageURL,
		}
		st.Products = append(st.Products, created)
		notifications.RecordMutation(st, actor, "product", created.ID, "create")
		return []storage.Key{storage.KeyProducts, storage.KeyActivityLog}
	})

	if duplicate {
		return catalog.Product{}, internal.NewConflictError(
			fmt.Sprintf("product id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("product created", "product_id", created.ID)
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, dto UpdateProductDTO) (catalog.Product, internal.Outcome) {
	var (
		updated catalog.Product
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		p := st.FindProduct(id)
		if p == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		applyProductPatch(p, dto)
		notifications.RecordMutation(st, actor, "product", p.ID, "update")
		updated = *p
		return []storage.Key{storage.KeyProducts, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("product not found for update", "product_id", id)
	}
	return updated, outcome
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "product", id, "delete")
				return []storage.Key{storage.KeyProducts, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("product not found for delete", "product_id", id)
	}
	return outcome
}

func (s *Service) ListSuppliers(ctx context.Context) []catalog.Supplier {
	var out []catalog.Supplier
	s.store.View(func(st *store.State) {
		out = append([]catalog.Supplier{}, st.Suppliers...)
	})
	return out
}

func (s *Service) CreateSupplier(ctx context.Context, dto CreateSupplierDTO) (catalog.Supplier, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("supplier validation failed", "error", err, "supplier_id", dto.ID)
		return catalog.Supplier{}, err
	}

	var (
		created   catalog.Supplier
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindSupplier(dto.ID) != nil {
			duplicate = true
			return nil
		}
		created = catalog.Supplier{
			ID:          dto.ID,
			Name:        dto.Name,
			ContactName: dto.ContactName,
			Email:       dto.Email,
			Phone:       dto.Phone,
			Address:     dto.Address,
			Category:    dto.Category,
			Status:      "active",
		}
		st.Suppliers = append(st.Suppliers, created)
		notifications.RecordMutation(st, actor, "supplier", created.ID, "create")
		return []storage.Key{storage.KeySuppliers, storage.KeyActivityLog}
	})

	if duplicate {
		return catalog.Supplier{}, internal.NewConflictError(
			fmt.Sprintf("supplier id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("supplier created", "supplier_id", created.ID)
	return created, nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, dto UpdateSupplierDTO) (catalog.Supplier, internal.Outcome) {
	var (
		updated catalog.Supplier
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		sp := st.FindSupplier(id)
		if sp == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		applySupplierPatch(sp, dto)
		notifications.RecordMutation(st, actor, "supplier", sp.ID, "update")
		updated = *sp
		return []storage.Key{storage.KeySuppliers, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("supplier not found for update", "supplier_id", id)
	}
	return updated, outcome
}

func (s *Service) DeleteSupplier(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.Suppliers {
			if st.Suppliers[i].ID == id {
				st.Suppliers = append(st.Suppliers[:i], st.Suppliers[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "supplier", id, "delete")
				return []storage.Key{storage.KeySuppliers, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("supplier not found for delete", "supplier_id", id)
	}
	return outcome
}
