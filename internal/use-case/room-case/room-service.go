package room_service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/pulley-doreurae/careerquest-chat/internal/cache"
	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	message_repo "github.com/pulley-doreurae/careerquest-chat/internal/repo/message"
	room_repo "github.com/pulley-doreurae/careerquest-chat/internal/repo/room"
	user_repo "github.com/pulley-doreurae/careerquest-chat/internal/repo/user"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"github.com/rs/zerolog/log"
)

type RoomService struct {
	AppState   *state.AppState
	RoomRepo   room_repo.RoomDirectoryContract
	MessageLog message_repo.MessageLogContract
	UserRepo   user_repo.UserDirectoryContract
	Cache      cache.RoomViewCacheContract
}

func NewRoomService(appState *state.AppState) RoomServiceContract {
	return &RoomService{
		AppState:   appState,
		RoomRepo:   room_repo.NewRoomRepo(appState),
		MessageLog: message_repo.NewMessageRepo(appState),
		UserRepo:   user_repo.NewUserRepo(appState),
		Cache:      cache.NewRoomViewCache(appState.Redis),
	}
}

func (s *RoomService) GetRoomInfo(ctx context.Context, roomNumber string) (*chat_dto.RoomSummary, *app_error.AppError) {
	room, appErr := s.RoomRepo.FindRoomByNumber(ctx, roomNumber)
	if appErr != nil {
		return nil, appErr
	}

	members, appErr := s.RoomRepo.FindRoomMembers(ctx, roomNumber)
	if appErr != nil {
		return nil, appErr
	}

	latest, appErr := s.latestMessage(ctx, roomNumber)
	if appErr != nil {
		return nil, appErr
	}

	return &chat_dto.RoomSummary{
		RoomID:       room.RoomNumber,
		RoomName:     room.Name,
		Participants: memberIDs(members),
		LastMessage:  latest,
	}, nil
}

func (s *RoomService) ListRoomsForUser(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, *app_error.AppError) {
	rooms, appErr := s.RoomRepo.FindRoomsByUser(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	summaries := make([]*chat_dto.RoomSummary, 0, len(rooms))
	cacheHealthy := true

	for _, room := range rooms {
		members, appErr := s.RoomRepo.FindRoomMembers(ctx, room.RoomNumber)
		if appErr != nil {
			return nil, appErr
		}

		latest, appErr := s.latestMessage(ctx, room.RoomNumber)
		if appErr != nil {
			return nil, appErr
		}

		summary := &chat_dto.RoomSummary{
			RoomID:       room.RoomNumber,
			RoomName:     room.Name,
			Participants: memberIDs(members),
			LastMessage:  latest,
		}
		summaries = append(summaries, summary)

		if err := s.Cache.PutSummary(ctx, userID, summary); err != nil {
			log.Warn().Err(err).Str("userID", userID).Str("roomNumber", room.RoomNumber).Msg("room list: failed to cache summary")
			cacheHealthy = false
		}
	}

	// only a complete population counts as initialized; a partial one is
	// rebuilt on the next cold pass
	if cacheHealthy {
		if err := s.Cache.MarkInitialized(ctx, userID); err != nil {
			log.Warn().Err(err).Str("userID", userID).Msg("room list: failed to mark cache initialized")
		}
	}

	return sortByLastMessage(summaries), nil
}

func (s *RoomService) GetRoomList(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, *app_error.AppError) {
	initialized, err := s.Cache.IsInitialized(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("room list: cache init check failed, rebuilding cold")
		return s.ListRoomsForUser(ctx, userID)
	}
	if !initialized {
		return s.ListRoomsForUser(ctx, userID)
	}

	summaries, err := s.Cache.GetAllSummaries(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("room list: cache read failed, rebuilding cold")
		return s.ListRoomsForUser(ctx, userID)
	}

	// another session may have advanced a room's last message since this
	// user's view was written
	for _, summary := range summaries {
		latest, err := s.Cache.GetLatest(ctx, summary.RoomID)
		if err != nil {
			log.Warn().Err(err).Str("roomNumber", summary.RoomID).Msg("room list: latest slot read failed")
			continue
		}
		if latest != nil {
			summary.LastMessage = latest
		}
	}

	return sortByLastMessage(summaries), nil
}

func (s *RoomService) CreateRoom(ctx context.Context, name, creatorID string) (*chat_dto.RoomSummary, *app_error.AppError) {
	user, appErr := s.UserRepo.FindUserByID(ctx, creatorID)
	if appErr != nil {
		return nil, appErr
	}

	room := &entity.Room{
		RoomNumber: uuid.NewString(),
		Name:       name,
	}
	if appErr := s.RoomRepo.CreateRoomWithCreator(ctx, room, user.ID); appErr != nil {
		return nil, appErr
	}

	summary := &chat_dto.RoomSummary{
		RoomID:       room.RoomNumber,
		RoomName:     room.Name,
		Participants: []string{user.ID},
	}

	s.insertIntoWarmCache(ctx, user.ID, summary)

	log.Info().Str("roomNumber", room.RoomNumber).Str("creator", user.ID).Msg("room created")
	return summary, nil
}

func (s *RoomService) JoinRoom(ctx context.Context, roomNumber, userID string) (*chat_dto.RoomSummary, *app_error.AppError) {
	room, appErr := s.RoomRepo.FindRoomByNumber(ctx, roomNumber)
	if appErr != nil {
		return nil, appErr
	}

	user, appErr := s.UserRepo.FindUserByID(ctx, userID)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := s.RoomRepo.AddMember(ctx, room.RoomNumber, user.ID); appErr != nil {
		return nil, appErr
	}

	members, appErr := s.RoomRepo.FindRoomMembers(ctx, room.RoomNumber)
	if appErr != nil {
		return nil, appErr
	}

	latest, appErr := s.latestMessage(ctx, room.RoomNumber)
	if appErr != nil {
		return nil, appErr
	}

	summary := &chat_dto.RoomSummary{
		RoomID:       room.RoomNumber,
		RoomName:     room.Name,
		Participants: memberIDs(members),
		LastMessage:  latest,
	}

	s.insertIntoWarmCache(ctx, user.ID, summary)

	log.Info().Str("roomNumber", room.RoomNumber).Str("userID", user.ID).Msg("user joined room")
	return summary, nil
}

func (s *RoomService) LeaveRoom(ctx context.Context, roomNumber, userID string) *app_error.AppError {
	user, appErr := s.UserRepo.FindUserByID(ctx, userID)
	if appErr != nil {
		return appErr
	}

	room, appErr := s.RoomRepo.FindRoomByNumber(ctx, roomNumber)
	if appErr != nil {
		return appErr
	}

	remaining, appErr := s.RoomRepo.RemoveMember(ctx, room.RoomNumber, user.ID)
	if appErr != nil {
		return appErr
	}

	if err := s.Cache.RemoveSummary(ctx, user.ID, room.RoomNumber); err != nil {
		log.Warn().Err(err).Str("userID", user.ID).Str("roomNumber", room.RoomNumber).Msg("leave: failed to evict cached summary")
	}

	if remaining == 0 {
		// message history is retained; the log is append-only
		if appErr := s.RoomRepo.DeleteRoom(ctx, room.RoomNumber); appErr != nil {
			return appErr
		}
		log.Info().Str("roomNumber", room.RoomNumber).Msg("last member left, room deleted")
	}

	return nil
}

// latestMessage prefers the cache-side latest slot and falls back to the
// message log, seeding the slot on the way back.
func (s *RoomService) latestMessage(ctx context.Context, roomNumber string) (*entity.ChatMessage, *app_error.AppError) {
	latest, err := s.Cache.GetLatest(ctx, roomNumber)
	if err != nil {
		log.Warn().Err(err).Str("roomNumber", roomNumber).Msg("latest slot read failed, falling back to message log")
	}
	if latest != nil {
		return latest, nil
	}

	latest, appErr := s.MessageLog.Latest(ctx, roomNumber)
	if appErr != nil {
		return nil, appErr
	}
	if latest != nil {
		if err := s.Cache.SetLatest(ctx, roomNumber, latest); err != nil {
			log.Warn().Err(err).Str("roomNumber", roomNumber).Msg("failed to seed latest slot")
		}
	}
	return latest, nil
}

// insertIntoWarmCache writes the summary only when the user's collection is
// already built; a cold user rebuilds everything on the next list call.
func (s *RoomService) insertIntoWarmCache(ctx context.Context, userID string, summary *chat_dto.RoomSummary) {
	initialized, err := s.Cache.IsInitialized(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("cache init check failed, skipping warm insert")
		return
	}
	if !initialized {
		return
	}
	if err := s.Cache.PutSummary(ctx, userID, summary); err != nil {
		log.Warn().Err(err).Str("userID", userID).Str("roomNumber", summary.RoomID).Msg("failed to insert summary into warm cache")
	}
}

// sortByLastMessage orders entries newest-first by their last message.
// Rooms without any message are left out of the ordering; when that would
// leave nothing, the original list is returned so brand-new rooms stay
// visible.
func sortByLastMessage(summaries []*chat_dto.RoomSummary) []*chat_dto.RoomSummary {
	withMessage := make([]*chat_dto.RoomSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.LastMessage != nil {
			withMessage = append(withMessage, s)
		}
	}

	if len(withMessage) == 0 {
		return summaries
	}

	sort.SliceStable(withMessage, func(i, j int) bool {
		return withMessage[i].LastMessage.Time.After(withMessage[j].LastMessage.Time)
	})
	return withMessage
}

func memberIDs(members []*entity.RoomMember) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.UserID)
	}
	return ids
}
