package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNotifyReachesAllSubscribers(t *testing.T) {
	registry := NewRegistry()
	first := registry.Subscribe()
	second := registry.Subscribe()
	defer registry.Unsubscribe(first)
	defer registry.Unsubscribe(second)

	registry.Notify("move_in")

	for _, sub := range []*Subscription{first, second} {
		select {
		case source := <-sub.C:
			assert.Equal(t, "move_in", source)
		case <-time.After(time.Second):
			t.Fatal("expected notification")
		}
	}
}

func TestRegistryUnsubscribeClosesChannel(t *testing.T) {
	registry := NewRegistry()
	sub := registry.Subscribe()
	require.Equal(t, 1, registry.Len())

	registry.Unsubscribe(sub)
	assert.Zero(t, registry.Len())

	_, open := <-sub.C
	assert.False(t, open)

	// Unsubscribing twice is harmless.
	registry.Unsubscribe(sub)
}

func TestRegistryNotifyNeverBlocks(t *testing.T) {
	registry := NewRegistry()
	sub := registry.Subscribe()
	defer registry.Unsubscribe(sub)

	// Far more notifications than the subscription buffers; Notify must
	// drop rather than block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			registry.Notify("burst")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notify blocked on a slow subscriber")
	}
}
