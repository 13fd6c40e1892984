package domain

const (
	EventNameRoomCreated       = "room.created"
	EventNameUserJoined        = "user.joined"
	EventNameOwnerElected      = "owner.elected"
	EventNameQuestionActivated = "question.activated"
	EventNameAnswerRecorded    = "answer.recorded"
	EventNameOwnerDisconnected = "owner.disconnected"
)

type EventRoomCreated struct {
	Room string
}

func (EventRoomCreated) Name() string { return EventNameRoomCreated }

type EventUserJoined struct {
	Room         string
	ConnectionID string
	DisplayName  string
}

func (EventUserJoined) Name() string { return EventNameUserJoined }

type EventOwnerElected struct {
	Room         string
	ConnectionID string
}

func (EventOwnerElected) Name() string { return EventNameOwnerElected }

type EventQuestionActivated struct {
	Room  string
	Index int
}

func (EventQuestionActivated) Name() string { return EventNameQuestionActivated }

type EventAnswerRecorded struct {
	Room    string
	Index   int
	Correct bool
}

func (EventAnswerRecorded) Name() string { return EventNameAnswerRecorded }

type EventOwnerDisconnected struct {
	Room string
}

func (EventOwnerDisconnected) Name() string { return EventNameOwnerDisconnected }
