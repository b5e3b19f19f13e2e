package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	h := NewHub()

	c1, err := h.Register(1, nil)
	require.NoError(t, err)
	c2, err := h.Register(1, nil)
	require.NoError(t, err)
	c3, err := h.Register(2, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, h.ClientCount())

	h.UnregisterClient(c1)
	assert.Equal(t, 2, h.ClientCount())

	// Unregistering the same client twice is a no-op
	h.UnregisterClient(c1)
	assert.Equal(t, 2, h.ClientCount())

	h.UnregisterClient(c2)
	h.UnregisterClient(c3)
	assert.Equal(t, 0, h.ClientCount())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	h := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := h.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := h.Register(1, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user connection limit")

	// Other users are unaffected
	_, err = h.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastAll(t *testing.T) {
	h := NewHub()

	c1, err := h.Register(1, nil)
	require.NoError(t, err)
	c2, err := h.Register(2, nil)
	require.NoError(t, err)

	h.BroadcastAll(`{"channel":"posts","action":"create"}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.JSONEq(t, `{"channel":"posts","action":"create"}`, string(msg))
		default:
			t.Fatalf("client %d received no broadcast", c.UserID)
		}
	}
}

func TestHub_BroadcastSkipsUnregistered(t *testing.T) {
	h := NewHub()

	c1, err := h.Register(1, nil)
	require.NoError(t, err)
	c2, err := h.Register(2, nil)
	require.NoError(t, err)

	h.UnregisterClient(c2)
	h.BroadcastAll("hello")

	select {
	case <-c1.Send:
	default:
		t.Fatal("registered client received no broadcast")
	}

	select {
	case <-c2.Send:
		t.Fatal("unregistered client received a broadcast")
	default:
	}
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	h := NewHub()
	c, err := h.Register(1, nil)
	require.NoError(t, err)

	// Fill the buffer without a consumer
	for i := 0; i < cap(c.Send); i++ {
		c.TrySend([]byte("fill"))
	}
	require.Len(t, c.Send, cap(c.Send))

	// Further sends drop instead of blocking
	done := make(chan struct{})
	go func() {
		c.TrySend([]byte("overflow"))
		close(done)
	}()
	<-done
	assert.Len(t, c.Send, cap(c.Send))
}
