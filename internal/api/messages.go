package api

import "github.com/jeffschwMSFT/clrkahoot/internal/domain"

// MessageType discriminates the outbound envelope.
type MessageType string

const (
	TypeMessage          MessageType = "message"
	TypeIsOwner          MessageType = "is_owner"
	TypeParticipants     MessageType = "participants"
	TypeQuestion         MessageType = "question"
	TypeQuestionComplete MessageType = "question_complete"
	TypeQuestionStats    MessageType = "question_stats"
	TypeAnswerRevealed   MessageType = "answer_revealed"
)

// ServerMessage is the single outbound envelope written to clients.
// Only the fields relevant to Type are populated.
type ServerMessage struct {
	Type MessageType `json:"type"`

	// TypeMessage
	Text string `json:"text,omitempty"`

	// TypeQuestion, TypeQuestionComplete, TypeAnswerRevealed
	Number int `json:"number"`

	// TypeQuestion
	Total     int      `json:"total,omitempty"`
	Broadcast bool     `json:"broadcast,omitempty"`
	Content   string   `json:"content,omitempty"`
	Answers   []string `json:"answers,omitempty"`

	// TypeQuestionComplete (the submitted answer), TypeAnswerRevealed (the correct answer)
	Answer string `json:"answer,omitempty"`

	// TypeParticipants: JSON array of "connectionId,displayName,score"
	Participants string `json:"participants,omitempty"`

	// TypeQuestionStats
	UserCount     int `json:"userCount,omitempty"`
	AnsweredCount int `json:"answeredCount,omitempty"`
}

func newMessage(text string) ServerMessage {
	return ServerMessage{Type: TypeMessage, Text: text}
}

func newIsOwner() ServerMessage {
	return ServerMessage{Type: TypeIsOwner}
}

func newParticipants(entries string) ServerMessage {
	return ServerMessage{Type: TypeParticipants, Participants: entries}
}

func newQuestion(q domain.QuestionView) ServerMessage {
	return ServerMessage{
		Type:      TypeQuestion,
		Number:    q.Index,
		Total:     q.Total,
		Broadcast: q.Broadcast,
		Content:   q.Content,
		Answers:   q.Answers[:],
	}
}

func newQuestionComplete(number int, submitted string) ServerMessage {
	return ServerMessage{Type: TypeQuestionComplete, Number: number, Answer: submitted}
}

func newQuestionStats(users, answered int) ServerMessage {
	return ServerMessage{Type: TypeQuestionStats, UserCount: users, AnsweredCount: answered}
}

func newAnswerRevealed(number int, correct string) ServerMessage {
	return ServerMessage{Type: TypeAnswerRevealed, Number: number, Answer: correct}
}
