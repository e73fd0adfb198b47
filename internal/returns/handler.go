package returns

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

func (h *Handler) ListReturns(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

func (h *Handler) GetReturn(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	found, outcome := h.Service.Get(r.Context(), id)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrReturnNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	var dto CreateReturnDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateReturn(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateReturnDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome := h.Service.Update(r.Context(), id, dto)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrReturnNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteReturn(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if outcome := h.Service.Delete(r.Context(), id); !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrReturnNotFound)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

// Respond decides a pending return and queues the customer email.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto RespondDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome, err := h.Service.Respond(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrReturnNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

// Refund marks an approved return refunded; any other status is a 422.
func (h *Handler) Refund(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome, err := h.Service.MarkRefunded(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrReturnNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}
