package session

import (
	"strings"
	"sync"
)

// Room holds one quiz room's membership, owner designation and question
// list. A single RWMutex serializes structural mutation; lookups and
// snapshots take the read side so broadcasts never block behind writers.
//
// Lock ordering: the room lock may be held while taking a user's answer
// lock (QuestionStats), never the reverse.
type Room struct {
	name string

	mu        sync.RWMutex
	users     map[string]*User // connection ID -> user
	owner     *User
	questions []*Question
}

func newRoom(name string) *Room {
	return &Room{
		name:  name,
		users: make(map[string]*User),
	}
}

func (r *Room) Name() string { return r.name }

// GetOrCreateUser returns the user for the connection, inserting a new
// record if the connection is unknown. The common case (already joined)
// never takes the write lock; creation re-checks under the write lock so
// concurrent first joins insert exactly once. It reports whether a new
// user was created.
func (r *Room) GetOrCreateUser(displayName, connectionID string) (*User, bool) {
	r.mu.RLock()
	u, ok := r.users[connectionID]
	r.mu.RUnlock()
	if ok {
		return u, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[connectionID]; ok {
		return u, false
	}

	u = newUser(displayName, connectionID)
	r.users[connectionID] = u
	return u, true
}

// ElectOwnerIfNone makes u the room owner if no owner is set. The
// election is one-shot: of N concurrent first joiners exactly one wins.
// It reports whether u was elected.
func (r *Room) ElectOwnerIfNone(u *User) bool {
	if u == nil {
		return false
	}

	r.mu.RLock()
	owned := r.owner != nil
	r.mu.RUnlock()
	if owned {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.owner != nil {
		return false
	}
	r.owner = u
	return true
}

// User looks up a member by connection ID.
func (r *Room) User(connectionID string) (*User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[connectionID]
	return u, ok
}

// RemoveUser drops u from the room. If u was the owner, ownership is
// cleared and never re-elected; the game is over for the remaining
// members. It reports whether a removal occurred.
func (r *Room) RemoveUser(u *User) bool {
	if u == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner != nil && strings.EqualFold(u.ConnectionID, r.owner.ConnectionID) {
		r.owner = nil
	}
	if _, ok := r.users[u.ConnectionID]; !ok {
		return false
	}
	delete(r.users, u.ConnectionID)
	return true
}

// IsOwner reports whether u is the current owner. Connection IDs compare
// case-insensitively.
func (r *Room) IsOwner(u *User) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return u != nil && r.owner != nil && strings.EqualFold(u.ConnectionID, r.owner.ConnectionID)
}

// Users returns a point-in-time snapshot of the membership. Later
// membership changes do not affect the returned slice.
func (r *Room) Users() []*User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	return users
}

// AddOrUpdateQuestion appends a new question (index == count) or
// overwrites an existing one (index < count). Indices stay contiguous:
// an index past the end fails. Appending an empty question fails.
// Updating deactivates the question so a live broadcast can't be edited
// into an inconsistent state. All text is sanitized.
func (r *Room) AddOrUpdateQuestion(index int, content, correct string, wrong [3]string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index > len(r.questions) {
		return false
	}

	if index == len(r.questions) {
		if strings.TrimSpace(content) == "" {
			return false
		}
		r.questions = append(r.questions, &Question{
			Content:       sanitize(content),
			CorrectAnswer: sanitize(correct),
			Wrong:         [3]string{sanitize(wrong[0]), sanitize(wrong[1]), sanitize(wrong[2])},
		})
		return true
	}

	q := r.questions[index]
	q.Content = sanitize(content)
	q.CorrectAnswer = sanitize(correct)
	q.Wrong = [3]string{sanitize(wrong[0]), sanitize(wrong[1]), sanitize(wrong[2])}
	q.active = false
	return true
}

// DeleteQuestion removes the question, shifting later indices down by
// one.
func (r *Room) DeleteQuestion(index int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.questions) {
		return false
	}
	r.questions = append(r.questions[:index], r.questions[index+1:]...)
	return true
}

// Question returns a copy of the question at index, so callers can read
// it without holding the room lock.
func (r *Room) Question(index int) (Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.questions) {
		return Question{}, false
	}
	return *r.questions[index], true
}

func (r *Room) QuestionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.questions)
}

// SetQuestionActive flips the activation flag; out-of-range indices are
// a no-op.
func (r *Room) SetQuestionActive(index int, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.questions) {
		return
	}
	r.questions[index].active = active
}

func (r *Room) IsQuestionActive(index int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.questions) {
		return false
	}
	return r.questions[index].active
}

// QuestionStats counts current members and how many of them have an
// answer recorded for the question, regardless of correctness.
func (r *Room) QuestionStats(index int) (total, answered int, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.questions) {
		return 0, 0, false
	}
	for _, u := range r.users {
		total++
		if u.HasAnswered(index) {
			answered++
		}
	}
	return total, answered, true
}
