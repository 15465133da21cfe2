package chat_handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	"github.com/pulley-doreurae/careerquest-chat/internal/handlers"
	"github.com/pulley-doreurae/careerquest-chat/internal/middleware"
	chat_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/chat-case"
	"github.com/pulley-doreurae/careerquest-chat/state"
)

type ChatHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  chat_service.ChatServiceContract
}

func NewChatHandler(appState *state.AppState, service chat_service.ChatServiceContract) *ChatHandler {
	return &ChatHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.SendMessageRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	sentAt := req.Time
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	msg := &entity.ChatMessage{
		RoomID: req.RoomID,
		UserID: req.UserID,
		Type:   entity.MessageType(req.Type),
		Msg:    req.Message,
		Time:   sentAt,
	}

	event, appErr := h.Service.SendMessage(r.Context(), msg)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("message sent successfully", *event, reqID))
	return nil
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomNumber := chi.URLParam(r, "roomNumber")

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return app_error.NewAppError(http.StatusBadRequest, "page must be a non-negative integer", "page")
		}
		page = parsed
	}

	messages, appErr := h.Service.MessagePage(r.Context(), roomNumber, page)
	if appErr != nil {
		return appErr
	}

	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		reqID = "unknown"
	}

	resp := chat_dto.MessagePageResponse{
		RoomID:   roomNumber,
		Page:     page,
		Messages: messages,
	}
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("messages fetch successfully", resp, reqID))
	return nil
}
