package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonces_IssueAndConsume(t *testing.T) {
	n := NewNonces(10, time.Minute)
	defer n.Close()

	nonce, err := n.Issue()
	require.NoError(t, err)
	assert.Len(t, nonce, nonceLength)
	assert.True(t, validNonce(nonce))

	assert.True(t, n.Consume(nonce))
	assert.False(t, n.Consume(nonce), "nonces are single use")
	assert.False(t, n.Consume("neverissued"))
}

func TestNonces_Unique(t *testing.T) {
	n := NewNonces(1000, time.Minute)
	defer n.Close()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		nonce, err := n.Issue()
		require.NoError(t, err)
		assert.False(t, seen[nonce])
		seen[nonce] = true
	}
}

func TestNonces_Bounded(t *testing.T) {
	n := NewNonces(2, time.Minute)
	defer n.Close()

	first, err := n.Issue()
	require.NoError(t, err)
	_, err = n.Issue()
	require.NoError(t, err)
	_, err = n.Issue()
	require.NoError(t, err)

	assert.False(t, n.Consume(first), "oldest nonce is evicted")
}

func TestNonces_Expire(t *testing.T) {
	n := NewNonces(10, 20*time.Millisecond)
	defer n.Close()

	nonce, err := n.Issue()
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, n.Consume(nonce))
}

func TestNonces_Close(t *testing.T) {
	n := NewNonces(10, time.Minute)

	nonce, err := n.Issue()
	require.NoError(t, err)

	n.Close()
	assert.False(t, n.Consume(nonce))
}
