package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JothiRam-cm/elevix/internal/domain"
	"github.com/JothiRam-cm/elevix/internal/service"
	"github.com/google/uuid"
)

type ChatHandler struct {
	svc      *service.ConversationService
	sessions *service.SessionManager
}

func NewChatHandler(svc *service.ConversationService, sessions *service.SessionManager) *ChatHandler {
	return &ChatHandler{svc: svc, sessions: sessions}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id"`
	Intent    domain.Intent     `json:"intent"`
	Action    domain.Action     `json:"action"`
	State     domain.TurnState  `json:"state"`
	Citations []domain.Citation `json:"citations,omitempty"`
}

// Handle processes one chat turn. Omitting session_id starts a new session.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var sessionID uuid.UUID
	if strings.TrimSpace(req.SessionID) == "" {
		sessionID = h.sessions.Create().ID
	} else {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid session_id")
			return
		}
		sessionID = id
	}

	result, err := h.svc.HandleQuery(r.Context(), sessionID, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Message:   result.Message,
		SessionID: result.SessionID.String(),
		Intent:    result.Intent,
		Action:    result.Action,
		State:     result.State,
		Citations: result.Sources,
	})
}
