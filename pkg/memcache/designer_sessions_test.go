package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndHistory(t *testing.T) {
	store := NewDesignerSessions()

	store.Append("s1", ChatMessage{Role: "user", Content: "hello"}, time.Minute)
	store.Append("s1", ChatMessage{Role: "assistant", Content: "hi"}, time.Minute)

	history, ok := store.History("s1")
	require.True(t, ok)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "hi", history[1].Content)
}

func TestHistoryUnknownSession(t *testing.T) {
	store := NewDesignerSessions()
	_, ok := store.History("missing")
	assert.False(t, ok)
}

func TestHistoryExpires(t *testing.T) {
	store := NewDesignerSessions()
	store.Append("s1", ChatMessage{Role: "user", Content: "hello"}, -time.Second)

	_, ok := store.History("s1")
	assert.False(t, ok)
}

func TestExpiredSessionRestartsFresh(t *testing.T) {
	store := NewDesignerSessions()
	store.Append("s1", ChatMessage{Role: "user", Content: "old"}, -time.Second)
	store.Append("s1", ChatMessage{Role: "user", Content: "new"}, time.Minute)

	history, ok := store.History("s1")
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.Equal(t, "new", history[0].Content)
}

func TestDrop(t *testing.T) {
	store := NewDesignerSessions()
	store.Append("s1", ChatMessage{Role: "user", Content: "hello"}, time.Minute)
	store.Drop("s1")

	_, ok := store.History("s1")
	assert.False(t, ok)
}

func TestHistoryReturnsACopy(t *testing.T) {
	store := NewDesignerSessions()
	store.Append("s1", ChatMessage{Role: "user", Content: "hello"}, time.Minute)

	history, _ := store.History("s1")
	history[0].Content = "mutated"

	fresh, _ := store.History("s1")
	assert.Equal(t, "hello", fresh[0].Content)
}
