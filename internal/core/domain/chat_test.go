package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatBoard_JSONFlattensHeader(t *testing.T) {
	b := ChatBoard{
		Chat:     Chat{ID: "c1", Title: "general"},
		Messages: []ChatMessage{{ID: "m1", ChatID: "c1", UserID: "u1", Text: "hi", TS: 5}},
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"c1","title":"general","messages":[{"id":"m1","chatId":"c1","userId":"u1","text":"hi","ts":5}]}`, string(raw))

	var back ChatBoard
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, b, back)
}

func TestProject_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(Project{ID: "p1", Title: "t", Tags: []string{"go"}, OwnerID: "u1", CreatedAt: 7})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Contains(t, m, "ownerId")
	assert.Contains(t, m, "createdAt")
	assert.NotContains(t, m, "logoUrl")
}
