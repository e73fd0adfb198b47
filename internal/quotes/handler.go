package quotes

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

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	found, outcome := h.Service.Get(r.Context(), id)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrQuoteNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuoteDTO
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

func (h *Handler) UpdateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateQuoteDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	updated, outcome := h.Service.Update(r.Context(), id, dto)
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrQuoteNotFound)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if outcome := h.Service.Delete(r.Context(), id); !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.ErrQuoteNotFound)
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}
