package auth

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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	session, tokens, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user":          session,
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.Refresh(r.Context(), dto.RefreshToken)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Service.Logout(r.Context())
	h.WriteJSON(w, http.StatusNoContent, nil)
}

// Me returns the stored session snapshot.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, outcome := h.Service.CurrentUser(r.Context())
	if !outcome.OK() {
		h.WriteOutcome(w, outcome, internal.NewNotFoundError("no active session", internal.ErrCodeUserNotFound))
		return
	}
	h.WriteJSON(w, http.StatusOK, session)
}
