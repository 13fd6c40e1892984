package domain

// Participant is one row of the participant list broadcast to a room.
type Participant struct {
	ConnectionID string
	DisplayName  string
	Score        int
}

// QuestionView is a question as presented to clients. For a private
// (owner-only) fetch the answers are [correct, wrong1, wrong2, wrong3];
// for a broadcast the four answers are shuffled.
type QuestionView struct {
	Index     int
	Total     int
	Broadcast bool
	Content   string
	Answers   [4]string
}
