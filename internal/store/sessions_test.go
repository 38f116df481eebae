package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreAppend(t *testing.T) {
	s := NewSessionStore(newTestDB(t))

	first, err := s.Append(1)
	require.NoError(t, err)
	assert.NotEmpty(t, first.Key)
	assert.False(t, first.LoginTime.IsZero())

	time.Sleep(5 * time.Millisecond)
	second, err := s.Append(1)
	require.NoError(t, err)
	assert.NotEqual(t, first.Key, second.Key)

	t.Run("list is newest first and owner-scoped", func(t *testing.T) {
		_, err := s.Append(2)
		require.NoError(t, err)

		list, err := s.List(1)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.Key, list[0].Key)
		assert.Equal(t, first.Key, list[1].Key)
	})
}

func TestSessionStoreRequiresOwner(t *testing.T) {
	s := NewSessionStore(newTestDB(t))

	_, err := s.Append(0)
	assert.ErrorIs(t, err, ErrNoOwner)

	_, err = s.List(0)
	assert.ErrorIs(t, err, ErrNoOwner)
}
