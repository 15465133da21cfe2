package chat_service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pulley-doreurae/careerquest-chat/internal/bus"
	"github.com/pulley-doreurae/careerquest-chat/internal/cache"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoomDir struct {
	rooms   map[string]*entity.Room
	members map[string][]string
}

func newFakeRoomDir() *fakeRoomDir {
	return &fakeRoomDir{
		rooms:   make(map[string]*entity.Room),
		members: make(map[string][]string),
	}
}

func (f *fakeRoomDir) CreateRoomWithCreator(_ context.Context, room *entity.Room, creatorID string) *app_error.AppError {
	f.rooms[room.RoomNumber] = room
	f.members[room.RoomNumber] = []string{creatorID}
	return nil
}

func (f *fakeRoomDir) FindRoomByNumber(_ context.Context, roomNumber string) (*entity.Room, *app_error.AppError) {
	room, ok := f.rooms[roomNumber]
	if !ok {
		return nil, app_error.RoomNotFound()
	}
	return room, nil
}

func (f *fakeRoomDir) FindRoomMembers(_ context.Context, roomNumber string) ([]*entity.RoomMember, *app_error.AppError) {
	var members []*entity.RoomMember
	for _, userID := range f.members[roomNumber] {
		members = append(members, &entity.RoomMember{RoomNumber: roomNumber, UserID: userID})
	}
	return members, nil
}

func (f *fakeRoomDir) FindRoomsByUser(_ context.Context, userID string) ([]*entity.Room, *app_error.AppError) {
	var rooms []*entity.Room
	for roomNumber, users := range f.members {
		for _, u := range users {
			if u == userID {
				rooms = append(rooms, f.rooms[roomNumber])
				break
			}
		}
	}
	return rooms, nil
}

func (f *fakeRoomDir) AddMember(_ context.Context, roomNumber, userID string) *app_error.AppError {
	f.members[roomNumber] = append(f.members[roomNumber], userID)
	return nil
}

func (f *fakeRoomDir) RemoveMember(_ context.Context, roomNumber, userID string) (int64, *app_error.AppError) {
	users := f.members[roomNumber]
	kept := users[:0]
	for _, u := range users {
		if u != userID {
			kept = append(kept, u)
		}
	}
	f.members[roomNumber] = kept
	return int64(len(kept)), nil
}

func (f *fakeRoomDir) DeleteRoom(_ context.Context, roomNumber string) *app_error.AppError {
	delete(f.rooms, roomNumber)
	delete(f.members, roomNumber)
	return nil
}

// recorder keeps the relative order of durable appends and publishes
type recorder struct {
	events []string
}

type fakeMessageLog struct {
	msgs       map[string][]*entity.ChatMessage
	failAppend bool
	rec        *recorder
}

func newFakeMessageLog(rec *recorder) *fakeMessageLog {
	return &fakeMessageLog{msgs: make(map[string][]*entity.ChatMessage), rec: rec}
}

func (f *fakeMessageLog) Append(_ context.Context, msg *entity.ChatMessage) *app_error.AppError {
	if f.failAppend {
		return app_error.NewAppError(http.StatusInternalServerError, "append failed", "mongo")
	}
	f.msgs[msg.RoomID] = append(f.msgs[msg.RoomID], msg)
	f.rec.events = append(f.rec.events, "append")
	return nil
}

func (f *fakeMessageLog) Page(_ context.Context, roomNumber string, page int) ([]*entity.ChatMessage, *app_error.AppError) {
	if page < 0 {
		return nil, app_error.NewAppError(http.StatusBadRequest, "page must not be negative", "page")
	}
	all := f.msgs[roomNumber]
	hi := len(all) - page*20
	if hi <= 0 {
		return nil, nil
	}
	lo := hi - 20
	if lo < 0 {
		lo = 0
	}
	out := make([]*entity.ChatMessage, hi-lo)
	copy(out, all[lo:hi])
	return out, nil
}

func (f *fakeMessageLog) Latest(_ context.Context, roomNumber string) (*entity.ChatMessage, *app_error.AppError) {
	all := f.msgs[roomNumber]
	if len(all) == 0 {
		return nil, nil
	}
	return all[len(all)-1], nil
}

type fakeUserDir struct {
	users map[string]*entity.User
}

func newFakeUserDir(ids ...string) *fakeUserDir {
	users := make(map[string]*entity.User)
	for _, id := range ids {
		users[id] = &entity.User{ID: id, Nickname: id}
	}
	return &fakeUserDir{users: users}
}

func (f *fakeUserDir) FindUserByID(_ context.Context, userID string) (*entity.User, *app_error.AppError) {
	user, ok := f.users[userID]
	if !ok {
		return nil, app_error.UserNotFound()
	}
	return user, nil
}

type captureBus struct {
	published []*bus.ChatEvent
	rec       *recorder
}

func (b *captureBus) Publish(_ context.Context, event *bus.ChatEvent) error {
	b.published = append(b.published, event)
	b.rec.events = append(b.rec.events, "publish")
	return nil
}

func (b *captureBus) Subscribe(_ context.Context) (<-chan *bus.ChatEvent, error) {
	ch := make(chan *bus.ChatEvent)
	close(ch)
	return ch, nil
}

type fixture struct {
	chat  *ChatService
	rooms *room_service.RoomService
	dir   *fakeRoomDir
	msgs  *fakeMessageLog
	bus   *captureBus
	cache cache.RoomViewCacheContract
}

func newFixture(t *testing.T, userIDs ...string) *fixture {
	mockRedis := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mockRedis.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rec := &recorder{}
	dir := newFakeRoomDir()
	msgs := newFakeMessageLog(rec)
	c := cache.NewRoomViewCache(rdb)
	capture := &captureBus{rec: rec}

	rooms := &room_service.RoomService{
		RoomRepo:   dir,
		MessageLog: msgs,
		UserRepo:   newFakeUserDir(userIDs...),
		Cache:      c,
	}

	return &fixture{
		chat: &ChatService{
			RoomService: rooms,
			MessageLog:  msgs,
			Cache:       c,
			Bus:         capture,
		},
		rooms: rooms,
		dir:   dir,
		msgs:  msgs,
		bus:   capture,
		cache: c,
	}
}

func talk(roomNumber, userID, body string) *entity.ChatMessage {
	return &entity.ChatMessage{
		RoomID: roomNumber,
		UserID: userID,
		Type:   entity.MessageTalk,
		Msg:    body,
		Time:   time.Now().UTC(),
	}
}

func TestSendMessage_FanOutToAllParticipants(t *testing.T) {
	f := newFixture(t, "alice", "bob", "carol")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "carol")
	require.Nil(t, appErr)

	// warm every participant's cache so they count as live
	for _, u := range []string{"alice", "bob", "carol"} {
		_, appErr := f.rooms.GetRoomList(ctx, u)
		require.Nil(t, appErr)
	}

	event, appErr := f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "hi"))
	require.Nil(t, appErr)
	require.NotNil(t, event)

	// bob's and carol's next list call sees the message
	for _, partner := range []string{"bob", "carol"} {
		list, appErr := f.rooms.GetRoomList(ctx, partner)
		require.Nil(t, appErr)
		require.Len(t, list, 1)
		require.NotNil(t, list[0].LastMessage)
		assert.Equal(t, "hi", list[0].LastMessage.Msg)
		assert.Equal(t, "alice", list[0].LastMessage.UserID)
	}

	// one event, carrying both partner lists
	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "alice", f.bus.published[0].SenderID)
	require.Len(t, f.bus.published[0].PartnerLists, 2)
	partnerIDs := []string{f.bus.published[0].PartnerLists[0].PartnerID, f.bus.published[0].PartnerLists[1].PartnerID}
	assert.ElementsMatch(t, []string{"bob", "carol"}, partnerIDs)
}

func TestSendMessage_QuitSkipsSenderCacheWrite(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)

	for _, u := range []string{"alice", "bob"} {
		_, appErr := f.rooms.GetRoomList(ctx, u)
		require.Nil(t, appErr)
	}

	// bob leaves: QUIT notification then membership removal
	quit := &entity.ChatMessage{
		RoomID: room.RoomID,
		UserID: "bob",
		Type:   entity.MessageQuit,
		Msg:    "bob left",
		Time:   time.Now().UTC(),
	}
	_, appErr = f.chat.SendMessage(ctx, quit)
	require.Nil(t, appErr)
	require.Nil(t, f.rooms.LeaveRoom(ctx, room.RoomID, "bob"))

	// alice still sees the room with the QUIT as its last message
	aliceList, appErr := f.rooms.GetRoomList(ctx, "alice")
	require.Nil(t, appErr)
	require.Len(t, aliceList, 1)
	require.NotNil(t, aliceList[0].LastMessage)
	assert.Equal(t, entity.MessageQuit, aliceList[0].LastMessage.Type)

	// bob's own view no longer contains the room
	bobList, appErr := f.rooms.GetRoomList(ctx, "bob")
	require.Nil(t, appErr)
	assert.Empty(t, bobList, "a user who quit must not have the room re-inserted")
}

func TestSendMessage_AppendFailureAbortsPublish(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)

	f.msgs.failAppend = true

	_, appErr = f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "lost"))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Empty(t, f.bus.published, "a failed append must not publish")
}

func TestSendMessage_AppendHappensBeforePublish(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)

	_, appErr = f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "hi"))
	require.Nil(t, appErr)

	require.Equal(t, []string{"append", "publish"}, f.msgs.rec.events)
}

func TestSendMessage_UninitializedPartnerSkipped(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)

	// only alice is live; bob has never polled
	_, appErr = f.rooms.GetRoomList(ctx, "alice")
	require.Nil(t, appErr)

	event, appErr := f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "hi"))
	require.Nil(t, appErr)
	assert.Empty(t, event.PartnerLists, "partners without an initialized cache rebuild cold on their next poll")

	// and the cold rebuild sees the durably logged message
	bobList, appErr := f.rooms.GetRoomList(ctx, "bob")
	require.Nil(t, appErr)
	require.Len(t, bobList, 1)
	require.NotNil(t, bobList[0].LastMessage)
	assert.Equal(t, "hi", bobList[0].LastMessage.Msg)
}

func TestSendMessage_CacheMissResolvesThroughDirectory(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)

	// alice's cache is empty; the send must still resolve the full room
	event, appErr := f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "hi"))
	require.Nil(t, appErr)
	require.NotNil(t, event.Message)
	assert.Equal(t, "hi", event.Message.Msg)
}

func TestSendMessage_UnknownRoom(t *testing.T) {
	f := newFixture(t, "alice")

	_, appErr := f.chat.SendMessage(context.Background(), talk("no-such-room", "alice", "hi"))
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Empty(t, f.bus.published)
}

func TestSendMessage_InvalidType(t *testing.T) {
	f := newFixture(t, "alice")

	msg := &entity.ChatMessage{RoomID: "r", UserID: "alice", Type: "SHOUT", Msg: "hi", Time: time.Now().UTC()}
	_, appErr := f.chat.SendMessage(context.Background(), msg)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestMessagePage_OrderingAcrossPages(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)

	base := time.Now().UTC()
	for i := 0; i < 45; i++ {
		msg := talk(room.RoomID, "alice", string(rune('A'+i%26)))
		msg.Time = base.Add(time.Duration(i) * time.Second)
		require.Nil(t, f.msgs.Append(ctx, msg))
	}

	page0, appErr := f.chat.MessagePage(ctx, room.RoomID, 0)
	require.Nil(t, appErr)
	require.Len(t, page0, 20)
	// ascending within the page, ending at the newest message
	assert.True(t, page0[0].Time.Before(page0[19].Time))
	assert.Equal(t, base.Add(44*time.Second), page0[19].Time)

	page1, appErr := f.chat.MessagePage(ctx, room.RoomID, 1)
	require.Nil(t, appErr)
	require.Len(t, page1, 20)
	assert.True(t, page1[19].Time.Before(page0[0].Time), "pages walk strictly backward, no overlap")

	page2, appErr := f.chat.MessagePage(ctx, room.RoomID, 2)
	require.Nil(t, appErr)
	require.Len(t, page2, 5, "last page holds the remainder")
	assert.True(t, page2[4].Time.Before(page1[0].Time))

	// no gaps: pages together cover every message exactly once
	total := len(page0) + len(page1) + len(page2)
	assert.Equal(t, 45, total)
}

func TestEndToEnd_StudyRoomScenario(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	// alice creates "Study"
	room, appErr := f.rooms.CreateRoom(ctx, "Study", "alice")
	require.Nil(t, appErr)

	// bob joins
	_, appErr = f.rooms.JoinRoom(ctx, room.RoomID, "bob")
	require.Nil(t, appErr)

	// alice sends "hello"
	_, appErr = f.chat.SendMessage(ctx, talk(room.RoomID, "alice", "hello"))
	require.Nil(t, appErr)

	// bob's room list shows the room with alice's message
	bobList, appErr := f.rooms.GetRoomList(ctx, "bob")
	require.Nil(t, appErr)
	require.Len(t, bobList, 1)
	assert.Equal(t, "Study", bobList[0].RoomName)
	require.NotNil(t, bobList[0].LastMessage)
	assert.Equal(t, "hello", bobList[0].LastMessage.Msg)
	assert.Equal(t, "alice", bobList[0].LastMessage.UserID)

	// bob leaves; the room survives with alice as its only member
	require.Nil(t, f.rooms.LeaveRoom(ctx, room.RoomID, "bob"))
	info, appErr := f.rooms.GetRoomInfo(ctx, room.RoomID)
	require.Nil(t, appErr)
	assert.Equal(t, []string{"alice"}, info.Participants)

	// alice leaves; membership reaches zero and the room is deleted
	require.Nil(t, f.rooms.LeaveRoom(ctx, room.RoomID, "alice"))
	_, appErr = f.rooms.GetRoomInfo(ctx, room.RoomID)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)

	// message history outlives the room
	history, appErr := f.chat.MessagePage(ctx, room.RoomID, 0)
	require.Nil(t, appErr)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Msg)
}
