package notifications

import (
	"net/http"

	"github.com/go-chi/chi"

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

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.List(r.Context()))
}

type addNotificationDTO struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

func (h *Handler) AddNotification(w http.ResponseWriter, r *http.Request) {
	var dto addNotificationDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if dto.Message == "" {
		h.HandleServiceError(w, internal.NewValidationError("message is required", internal.ErrCodeValidationFailed))
		return
	}

	h.Service.Add(r.Context(), dto.Type, dto.Message, dto.Link)
	h.WriteJSON(w, http.StatusCreated, nil)
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if outcome := h.Service.MarkRead(r.Context(), id); !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.NewNotFoundError("notification not found", internal.ErrCodeNotificationNotFound))
		return
	}
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.Service.Clear(r.Context())
	h.WriteJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.Service.Activity(r.Context()))
}
