package session

import "sync"

// User is a participant in a room, keyed by the transport-assigned
// connection ID. The answers map is guarded by its own mutex so answer
// submission never contends with room-level reads.
type User struct {
	ConnectionID string
	DisplayName  string

	mu      sync.Mutex
	answers map[int]bool // question index -> answered correctly
}

func newUser(displayName, connectionID string) *User {
	return &User{
		ConnectionID: connectionID,
		DisplayName:  displayName,
		answers:      make(map[int]bool),
	}
}

// TrySetAnswer records the outcome for a question, accepting only the
// first answer per question index. It reports whether the outcome was
// recorded.
func (u *User) TrySetAnswer(index int, correct bool) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, ok := u.answers[index]; ok {
		return false
	}
	u.answers[index] = correct
	return true
}

// HasAnswered reports whether the user has an answer recorded for the
// question, regardless of correctness.
func (u *User) HasAnswered(index int) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	_, ok := u.answers[index]
	return ok
}

// Score is the number of questions the user answered correctly.
func (u *User) Score() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	sum := 0
	for _, correct := range u.answers {
		if correct {
			sum++
		}
	}
	return sum
}
