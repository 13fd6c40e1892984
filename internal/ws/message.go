package ws

// Inbound actions.
const (
	ActionJoin              = "join"
	ActionAddUpdateQuestion = "add_update_question"
	ActionDeleteQuestion    = "delete_question"
	ActionGetQuestion       = "get_question"
	ActionFinishQuestion    = "finish_question"
	ActionAnswer            = "answer"
)

// ClientMessage is the inbound envelope. Only the fields relevant to
// Action are expected to be set.
type ClientMessage struct {
	Action string `json:"action"`
	Room   string `json:"room"`

	// ActionJoin
	Name string `json:"name,omitempty"`

	// question index for question actions
	Number int `json:"number"`

	// ActionAddUpdateQuestion
	Content string `json:"content,omitempty"`
	Correct string `json:"correct,omitempty"`
	Wrong1  string `json:"wrong1,omitempty"`
	Wrong2  string `json:"wrong2,omitempty"`
	Wrong3  string `json:"wrong3,omitempty"`

	// ActionGetQuestion
	Broadcast bool `json:"broadcast,omitempty"`

	// ActionAnswer
	Answer string `json:"answer,omitempty"`
}
