package session

import "strings"

// Question is an authored multiple-choice question: one correct answer
// and exactly three incorrect ones. Fields are mutated only while the
// owning room's write lock is held; Room.Question hands out copies.
type Question struct {
	Content       string
	CorrectAnswer string
	Wrong         [3]string

	active bool
}

// sanitizer neutralizes user-authored text before it can reach a page:
// the two-character escape sequence `\n` and raw '<' are both rendered
// inert.
var sanitizer = strings.NewReplacer(`\n`, "&#10;", "<", "&lt;")

func sanitize(s string) string {
	return sanitizer.Replace(s)
}
