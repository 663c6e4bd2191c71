package handlers

import (
	"net/http"
	"strconv"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/app"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/middleware"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/http/response"
)

type MessageHandler struct {
	messages *app.MessageService
}

func NewMessageHandler(messages *app.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	Body string `json:"body"`
}

// Send serves POST /applications/{id}/messages.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.messages.Send(r.Context(), applicationID, senderID, req.Body)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// List serves GET /applications/{id}/messages.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.messages.List(r.Context(), applicationID, requesterID, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
