package message_repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pulley-doreurae/careerquest-chat/config"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const collectionName = "chat_messages"

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageLogContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) collection() *mongo.Collection {
	return r.AppState.Mongo.Database(config.Conf.DATABASE.Mongo.Database).Collection(collectionName)
}

func (r *MessageRepo) Append(ctx context.Context, msg *entity.ChatMessage) *app_error.AppError {
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	if _, err := r.collection().InsertOne(ctx, msg); err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to append message: %v", err), "mongo")
	}
	return nil
}

func (r *MessageRepo) Page(ctx context.Context, roomNumber string, page int) ([]*entity.ChatMessage, *app_error.AppError) {
	if page < 0 {
		return nil, app_error.NewAppError(http.StatusBadRequest, "page must not be negative", "page")
	}

	filter := bson.M{"roomId": roomNumber}
	opts := options.Find().
		SetSort(bson.D{{Key: "time", Value: -1}}).
		SetSkip(int64(page * PageSize)).
		SetLimit(int64(PageSize))

	cur, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch messages: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	var messages []*entity.ChatMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode messages: %v", err), "mongo")
	}

	// paging walks backward from now; the page itself is handed back in
	// chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *MessageRepo) Latest(ctx context.Context, roomNumber string) (*entity.ChatMessage, *app_error.AppError) {
	var msg entity.ChatMessage

	opts := options.FindOne().SetSort(bson.D{{Key: "time", Value: -1}})
	if err := r.collection().FindOne(ctx, bson.M{"roomId": roomNumber}, opts).Decode(&msg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch latest message: %v", err), "mongo")
	}

	return &msg, nil
}
