package websocket

import (
	"context"
	"encoding/json"

	"github.com/pulley-doreurae/careerquest-chat/internal/bus"
	"github.com/rs/zerolog/log"
)

// Relay drains the event bus and pushes each affected user's payload to
// their live connections. Delivery is best-effort; an offline user simply
// rebuilds their view on the next poll.
type Relay struct {
	Hub *Hub
	Bus bus.EventBusContract
}

func NewRelay(hub *Hub, eventBus bus.EventBusContract) *Relay {
	return &Relay{
		Hub: hub,
		Bus: eventBus,
	}
}

func (r *Relay) Start(ctx context.Context) error {
	events, err := r.Bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		log.Info().Msg("ws: relay started")
		for event := range events {
			r.dispatch(event)
		}
		log.Info().Msg("ws: relay stopped")
	}()

	return nil
}

func (r *Relay) dispatch(event *bus.ChatEvent) {
	r.send(event.SenderID, &OutgoingMessage{
		Event:    "message",
		Message:  event.Message,
		RoomList: event.SenderRoomList,
	})

	for _, partner := range event.PartnerLists {
		r.send(partner.PartnerID, &OutgoingMessage{
			Event:    "message",
			Message:  event.Message,
			RoomList: partner.List,
		})
	}
}

func (r *Relay) send(userID string, out *OutgoingMessage) {
	if !r.Hub.IsUserOnline(userID) {
		return
	}

	data, err := json.Marshal(out)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ws: failed to marshal outgoing message")
		return
	}

	r.Hub.BroadcastToUser(userID, data)
}
