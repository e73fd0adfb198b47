package catalog

import (
	"net/http"

	"github.com/rahayucraft/studio-management/internal"
	"github.com/rahayucraft/studio-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.ListProducts(r.Context()))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	found, outcome := h.Service.GetProduct(r.Context(), id)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrProductNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateProduct(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateProductDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome := h.Service.UpdateProduct(r.Context(), id, dto)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrProductNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if outcome := h.Service.DeleteProduct(r.Context(), id); !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrProductNotFound)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.ListSuppliers(r.Context()))
}

func (h *Handler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var dto CreateSupplierDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.CreateSupplier(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateSupplierDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome := h.Service.UpdateSupplier(r.Context(), id, dto)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrSupplierNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if outcome := h.Service.DeleteSupplier(r.Context(), id); !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrSupplierNotFound)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}
