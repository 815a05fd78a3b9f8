package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUser_LoadUser_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, SaveUser(ctx, s, []byte(`{"id":"u1","name":"Bob","roles":["admin"]}`)))

	user, err := LoadUser(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "u1", "name": "Bob", "roles": []any{"admin"}}, user)
}

func TestSaveUser_RejectsInvalidJSON(t *testing.T) {
	s := NewMemoryStore()

	err := SaveUser(context.Background(), s, []byte(`{"id":`))
	require.Error(t, err)

	raw, _ := s.Get(context.Background(), KeyUser)
	assert.Empty(t, raw, "nothing must be written on error")
}

func TestLoadUser_Missing(t *testing.T) {
	user, err := LoadUser(context.Background(), NewMemoryStore())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLoadUser_Corrupt(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(context.Background(), KeyUser, "not json"))

	_, err := LoadUser(context.Background(), s)
	require.Error(t, err)
}
