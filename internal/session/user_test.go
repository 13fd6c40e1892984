package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_TrySetAnswerAtMostOnce(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t)
	u, _ := r.GetOrCreateUser("alice", "conn-1")

	assert.True(t, u.TrySetAnswer(0, true))
	assert.False(t, u.TrySetAnswer(0, false), "second answer for the same index must be rejected")
	assert.Equal(t, 1, u.Score(), "the rejected answer must not alter the stored outcome")

	assert.True(t, u.TrySetAnswer(1, false))
	assert.Equal(t, 1, u.Score())
	assert.True(t, u.HasAnswered(1))
	assert.False(t, u.HasAnswered(2))
}

func TestUser_TrySetAnswerConcurrentDuplicates(t *testing.T) {
	t.Parallel()

	const attempts = 100

	r := newTestRoom(t)
	u, _ := r.GetOrCreateUser("alice", "conn-1")

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if u.TrySetAnswer(0, i%2 == 0) {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, won, "exactly one concurrent duplicate may be recorded")
}

func TestUser_ScoreCountsOnlyCorrect(t *testing.T) {
	t.Parallel()

	r := newTestRoom(t)
	u, _ := r.GetOrCreateUser("alice", "conn-1")

	require.True(t, u.TrySetAnswer(0, true))
	require.True(t, u.TrySetAnswer(1, false))
	require.True(t, u.TrySetAnswer(2, true))

	assert.Equal(t, 2, u.Score())
}
