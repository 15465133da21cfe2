package chat_service

import (
	"context"
	"net/http"

	"github.com/pulley-doreurae/careerquest-chat/internal/bus"
	"github.com/pulley-doreurae/careerquest-chat/internal/cache"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	message_repo "github.com/pulley-doreurae/careerquest-chat/internal/repo/message"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"github.com/rs/zerolog/log"
)

type ChatService struct {
	AppState    *state.AppState
	RoomService room_service.RoomServiceContract
	MessageLog  message_repo.MessageLogContract
	Cache       cache.RoomViewCacheContract
	Bus         bus.EventBusContract
}

func NewChatService(appState *state.AppState, eventBus bus.EventBusContract) ChatServiceContract {
	return &ChatService{
		AppState:    appState,
		RoomService: room_service.NewRoomService(appState),
		MessageLog:  message_repo.NewMessageRepo(appState),
		Cache:       cache.NewRoomViewCache(appState.Redis),
		Bus:         eventBus,
	}
}

func (c *ChatService) SendMessage(ctx context.Context, msg *entity.ChatMessage) (*bus.ChatEvent, *app_error.AppError) {
	if !msg.Type.Valid() {
		return nil, app_error.NewAppError(http.StatusBadRequest, "unknown message type", "type")
	}

	// resolve the sender's view of the room; the cache is advisory, the
	// directory is the fallback
	summary, err := c.Cache.GetSummary(ctx, msg.UserID, msg.RoomID)
	if err != nil {
		log.Warn().Err(err).Str("userID", msg.UserID).Str("roomNumber", msg.RoomID).Msg("send: cached summary read failed")
	}
	if summary == nil {
		var appErr *app_error.AppError
		summary, appErr = c.RoomService.GetRoomInfo(ctx, msg.RoomID)
		if appErr != nil {
			return nil, appErr
		}
	}

	summary.LastMessage = msg
	if err := c.Cache.SetLatest(ctx, msg.RoomID, msg); err != nil {
		log.Warn().Err(err).Str("roomNumber", msg.RoomID).Msg("send: failed to write latest slot")
	}

	// fan the updated summary out to every participant's view; a user who
	// just quit must not have the room re-inserted into their own cache
	for _, participant := range summary.Participants {
		if msg.Type == entity.MessageQuit && participant == msg.UserID {
			continue
		}
		if err := c.Cache.PutSummary(ctx, participant, summary); err != nil {
			log.Warn().Err(err).Str("userID", participant).Str("roomNumber", msg.RoomID).Msg("send: failed to fan summary out to participant")
		}
	}

	senderList, appErr := c.RoomService.GetRoomList(ctx, msg.UserID)
	if appErr != nil {
		return nil, appErr
	}

	partnerLists := c.collectPartnerLists(ctx, summary.Participants, msg.UserID)

	// the durable append happens-before the publish; a failed append must
	// surface and must not publish
	if appErr := c.MessageLog.Append(ctx, msg); appErr != nil {
		return nil, appErr
	}

	event := &bus.ChatEvent{
		SenderID:       msg.UserID,
		Message:        msg,
		SenderRoomList: senderList,
		PartnerLists:   partnerLists,
	}
	if err := c.Bus.Publish(ctx, event); err != nil {
		// fire-and-forget; partners self-correct on their next poll
		log.Warn().Err(err).Str("roomNumber", msg.RoomID).Msg("send: event publish failed")
	}

	return event, nil
}

func (c *ChatService) MessagePage(ctx context.Context, roomNumber string, page int) ([]*entity.ChatMessage, *app_error.AppError) {
	return c.MessageLog.Page(ctx, roomNumber, page)
}

// collectPartnerLists recomputes the room list of every live partner.
// Partners without an initialized cache rebuild cold on their next poll;
// one partner's failure never blocks the others.
func (c *ChatService) collectPartnerLists(ctx context.Context, participants []string, senderID string) []bus.PartnerList {
	var partnerLists []bus.PartnerList

	for _, partner := range participants {
		if partner == senderID {
			continue
		}

		initialized, err := c.Cache.IsInitialized(ctx, partner)
		if err != nil {
			log.Warn().Err(err).Str("userID", partner).Msg("send: partner cache check failed")
			continue
		}
		if !initialized {
			continue
		}

		list, appErr := c.RoomService.GetRoomList(ctx, partner)
		if appErr != nil {
			log.Warn().Err(appErr).Str("userID", partner).Msg("send: partner list refresh failed")
			continue
		}

		partnerLists = append(partnerLists, bus.PartnerList{
			PartnerID: partner,
			List:      list,
		})
	}

	return partnerLists
}
