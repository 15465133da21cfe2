package room_handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	"github.com/pulley-doreurae/careerquest-chat/internal/handlers"
	"github.com/pulley-doreurae/careerquest-chat/internal/middleware"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/pulley-doreurae/careerquest-chat/state"
)

type RoomHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  room_service.RoomServiceContract
}

func NewRoomHandler(appState *state.AppState, service room_service.RoomServiceContract) *RoomHandler {
	return &RoomHandler{
		State:    appState,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.CreateRoomRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.CreateRoom(r.Context(), req.Name, req.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusCreated, handlers.CreateResponse("room created successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.JoinRoomRequest
	defer r.Body.Close()

	roomNumber := chi.URLParam(r, "roomNumber")
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.JoinRoom(r.Context(), roomNumber, req.UserID)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("room joined successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) LeaveRoom(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req chat_dto.LeaveRoomRequest
	defer r.Body.Close()

	roomNumber := chi.URLParam(r, "roomNumber")
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}

	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	if appErr := h.Service.LeaveRoom(r.Context(), roomNumber, req.UserID); appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("room left successfully", struct{}{}, requestID(r)))
	return nil
}

func (h *RoomHandler) GetRoomInfo(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	roomNumber := chi.URLParam(r, "roomNumber")

	resp, appErr := h.Service.GetRoomInfo(r.Context(), roomNumber)
	if appErr != nil {
		return appErr
	}

	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("room fetched successfully", *resp, requestID(r)))
	return nil
}

func (h *RoomHandler) GetRoomList(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		return app_error.NewAppError(http.StatusBadRequest, "user_id is required", "user_id")
	}

	rooms, appErr := h.Service.GetRoomList(r.Context(), userID)
	if appErr != nil {
		return appErr
	}

	resp := chat_dto.RoomListResponse{Rooms: rooms}
	handlers.WriteJSON(w, http.StatusOK, handlers.CreateResponse("room list fetched successfully", resp, requestID(r)))
	return nil
}

func requestID(r *http.Request) string {
	reqID, ok := r.Context().Value(middleware.RequestIdKey).(string)
	if !ok {
		return "unknown"
	}
	return reqID
}
