package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/jeffschwMSFT/clrkahoot/internal/domain"
	"github.com/jeffschwMSFT/clrkahoot/internal/event"
	"github.com/jeffschwMSFT/clrkahoot/internal/session"
)

// Messenger is the outbound side of the transport: unicast to a single
// connection, broadcast to every connection in a room's group. The
// websocket hub implements it.
type Messenger interface {
	Unicast(connectionID string, msg ServerMessage)
	Broadcast(room string, msg ServerMessage)
	AddToRoom(connectionID, room string)
}

type Config struct {
	Registry  *session.Registry
	Messenger Messenger
	EventBus  *event.Bus
}

// API translates inbound client events into registry/room operations and
// outbound messages. Owner-only actions by non-owners are dropped
// silently so unauthorized callers learn nothing about the room.
type API struct {
	reg *session.Registry
	out Messenger
	eb  *event.Bus
}

func New(c Config) *API {
	return &API{
		reg: c.Registry,
		out: c.Messenger,
		eb:  c.EventBus,
	}
}

// Join resolves or creates the room and the caller's user record,
// attempts owner election, associates the connection with the room's
// broadcast group, tells the caller if they are the owner and sends the
// participant list to everyone.
func (a *API) Join(ctx context.Context, connID, roomName, displayName string) {
	room, created := a.reg.GetOrCreate(roomName)
	if created {
		a.eb.Publish(ctx, domain.EventRoomCreated{Room: roomName})
	}

	user, _ := room.GetOrCreateUser(displayName, connID)
	if room.ElectOwnerIfNone(user) {
		a.eb.Publish(ctx, domain.EventOwnerElected{Room: roomName, ConnectionID: connID})
	}

	a.out.AddToRoom(connID, roomName)
	a.eb.Publish(ctx, domain.EventUserJoined{Room: roomName, ConnectionID: connID, DisplayName: displayName})

	if room.IsOwner(user) {
		a.out.Unicast(connID, newIsOwner())
	}

	a.sendParticipants(room)
}

// AddUpdateQuestion authors a new question or overwrites an existing
// one. Owner only.
func (a *API) AddUpdateQuestion(ctx context.Context, connID, roomName string, number int, content, correct, wrong1, wrong2, wrong3 string) {
	room, user, ok := a.resolve(connID, roomName)
	if !ok || !room.IsOwner(user) {
		return
	}

	if !room.AddOrUpdateQuestion(number, content, correct, [3]string{wrong1, wrong2, wrong3}) {
		a.out.Unicast(connID, newMessage("unable to add/update question"))
	}
}

// DeleteQuestion removes a question, shifting later indices down. Owner
// only.
func (a *API) DeleteQuestion(ctx context.Context, connID, roomName string, number int) {
	room, user, ok := a.resolve(connID, roomName)
	if !ok || !room.IsOwner(user) {
		return
	}

	if !room.DeleteQuestion(number) {
		a.out.Unicast(connID, newMessage("unable to delete question"))
	}
}

// GetQuestion either returns the question privately to the owner with
// answers in stored order (broadcast=false), or activates it and
// broadcasts it to the room with the four answers shuffled
// (broadcast=true). A private fetch of a missing question returns an
// empty placeholder so authoring UIs can probe the next index.
func (a *API) GetQuestion(ctx context.Context, connID, roomName string, number int, broadcast bool) {
	room, user, ok := a.resolve(connID, roomName)
	if !ok || !room.IsOwner(user) {
		return
	}

	q, ok := room.Question(number)
	total := room.QuestionCount()
	if !ok {
		if broadcast {
			a.out.Unicast(connID, newMessage("unable to broadcast question as it is not found"))
			return
		}
		a.out.Unicast(connID, newQuestion(domain.QuestionView{Index: number, Total: total}))
		return
	}

	if !broadcast {
		a.out.Unicast(connID, newQuestion(domain.QuestionView{
			Index:   number,
			Total:   total,
			Content: q.Content,
			Answers: [4]string{q.CorrectAnswer, q.Wrong[0], q.Wrong[1], q.Wrong[2]},
		}))
		return
	}

	// Activation and broadcast are deliberately not atomic: a user who
	// joins in between simply re-requests the question to catch up.
	room.SetQuestionActive(number, true)
	a.eb.Publish(ctx, domain.EventQuestionActivated{Room: roomName, Index: number})

	answers := [4]string{q.CorrectAnswer, q.Wrong[0], q.Wrong[1], q.Wrong[2]}
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})

	a.out.Broadcast(roomName, newQuestion(domain.QuestionView{
		Index:     number,
		Total:     total,
		Broadcast: true,
		Content:   q.Content,
		Answers:   answers,
	}))
}

// FinishQuestion deactivates the question, reveals the correct answer to
// the room and re-sends the participant list with updated scores. Owner
// only; a missing question is ignored.
func (a *API) FinishQuestion(ctx context.Context, connID, roomName string, number int) {
	room, user, ok := a.resolve(connID, roomName)
	if !ok || !room.IsOwner(user) {
		return
	}

	q, ok := room.Question(number)
	if !ok {
		return
	}

	room.SetQuestionActive(number, false)
	a.out.Broadcast(roomName, newAnswerRevealed(number, q.CorrectAnswer))
	a.sendParticipants(room)
}

// Answer records a submission against the active question. The first
// answer per user and question wins; duplicates and submissions against
// inactive questions are dropped without notice.
func (a *API) Answer(ctx context.Context, connID, roomName string, number int, answer string) {
	room, user, ok := a.resolve(connID, roomName)
	if !ok {
		return
	}

	q, ok := room.Question(number)
	if !ok {
		a.out.Unicast(connID, newMessage("failed to answer question"))
		return
	}

	if !room.IsQuestionActive(number) {
		return
	}

	correct := strings.EqualFold(q.CorrectAnswer, answer)
	if user.TrySetAnswer(number, correct) {
		a.out.Unicast(connID, newQuestionComplete(number, answer))
		a.eb.Publish(ctx, domain.EventAnswerRecorded{Room: roomName, Index: number, Correct: correct})
	}

	if users, answered, ok := room.QuestionStats(number); ok {
		a.out.Broadcast(roomName, newQuestionStats(users, answered))
	}
}

// Disconnect locates the connection's room, removes the user, announces
// game over if the owner left, and refreshes the participant list.
func (a *API) Disconnect(ctx context.Context, connID string) {
	room, user, ok := a.reg.FindByConnection(connID)
	if !ok {
		return
	}

	wasOwner := room.IsOwner(user)
	room.RemoveUser(user)

	if wasOwner {
		a.out.Broadcast(room.Name(), newMessage("the owner of this game has disconnected and the game is over"))
		a.eb.Publish(ctx, domain.EventOwnerDisconnected{Room: room.Name()})
	}

	a.sendParticipants(room)
}

// resolve looks up the room and the caller's user record, sending the
// "please reload" notice on a miss. Non-join operations never create
// rooms.
func (a *API) resolve(connID, roomName string) (*session.Room, *session.User, bool) {
	room, ok := a.reg.Get(roomName)
	if !ok {
		a.out.Unicast(connID, newMessage("unable to find group (please reload)"))
		return nil, nil, false
	}

	user, ok := room.User(connID)
	if !ok {
		a.out.Unicast(connID, newMessage("unable to find user (please reload)"))
		return nil, nil, false
	}

	return room, user, true
}

// sendParticipants broadcasts the current membership with scores,
// serialized as a JSON array of "connectionId,displayName,score". An
// empty room still gets the (empty) list so clients can clear their view.
func (a *API) sendParticipants(room *session.Room) {
	users := room.Users()
	entries := make([]string, 0, len(users))
	for _, u := range users {
		entries = append(entries, fmt.Sprintf("%s,%s,%d", u.ConnectionID, u.DisplayName, u.Score()))
	}

	b, err := json.Marshal(entries)
	if err != nil {
		slog.Error("api: marshal participants failed", "room", room.Name(), "error", err)
		return
	}

	a.out.Broadcast(room.Name(), newParticipants(string(b)))
}
