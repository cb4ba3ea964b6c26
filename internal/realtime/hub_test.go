package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	t.Run("Should deliver synchronously in subscription order", func(t *testing.T) {
		hub := NewHub()
		var got []string
		hub.Subscribe(func(ev AuthEvent) { got = append(got, "a:"+ev.ClientID) })
		hub.Subscribe(func(ev AuthEvent) { got = append(got, "b:"+ev.ClientID) })

		hub.NotifyAuthChanged("c1")

		assert.Equal(t, []string{"a:c1", "b:c1"}, got)
	})

	t.Run("Should not replay to late subscribers", func(t *testing.T) {
		hub := NewHub()
		hub.NotifyAuthChanged("c1")

		calls := 0
		hub.Subscribe(func(AuthEvent) { calls++ })

		assert.Equal(t, 0, calls)
	})

	t.Run("Should stop delivering after unsubscribe", func(t *testing.T) {
		hub := NewHub()
		calls := 0
		unsubscribe := hub.Subscribe(func(AuthEvent) { calls++ })

		hub.NotifyAuthChanged("c1")
		unsubscribe()
		unsubscribe()
		hub.NotifyAuthChanged("c1")

		assert.Equal(t, 1, calls)
		assert.Equal(t, 0, hub.Len())
	})

	t.Run("Should allow unsubscribing from inside a callback", func(t *testing.T) {
		hub := NewHub()
		calls := 0
		var unsubscribe func()
		unsubscribe = hub.Subscribe(func(AuthEvent) {
			calls++
			unsubscribe()
		})

		hub.NotifyAuthChanged("c1")
		hub.NotifyAuthChanged("c1")

		assert.Equal(t, 1, calls)
	})

	t.Run("Should keep delivering after a subscriber panics", func(t *testing.T) {
		hub := NewHub()
		reached := false
		hub.Subscribe(func(AuthEvent) { panic("boom") })
		hub.Subscribe(func(AuthEvent) { reached = true })

		assert.NotPanics(t, func() { hub.NotifyAuthChanged("c1") })
		assert.True(t, reached)
	})

	t.Run("Should tag events with the instance id and publish them", func(t *testing.T) {
		hub := NewHub()
		var published []AuthEvent
		hub.SetPublisher(func(ev AuthEvent) { published = append(published, ev) })

		hub.NotifyAuthChanged("c7")

		require.Len(t, published, 1)
		assert.Equal(t, "c7", published[0].ClientID)
		assert.Equal(t, hub.InstanceID(), published[0].Origin)
	})
}

func TestBridge(t *testing.T) {
	mr := miniredis.RunT(t)
	newClient := func() *redis.Client {
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		return rdb
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hubA, hubB := NewHub(), NewHub()
	bridgeA, bridgeB := NewBridge(newClient(), hubA), NewBridge(newClient(), hubB)

	readyA, readyB := make(chan struct{}), make(chan struct{})
	go func() { _ = bridgeA.Run(ctx, readyA) }()
	go func() { _ = bridgeB.Run(ctx, readyB) }()
	<-readyA
	<-readyB

	gotA := make(chan AuthEvent, 4)
	gotB := make(chan AuthEvent, 4)
	hubA.Subscribe(func(ev AuthEvent) { gotA <- ev })
	hubB.Subscribe(func(ev AuthEvent) { gotB <- ev })

	hubA.NotifyAuthChanged("c1")

	select {
	case ev := <-gotB:
		assert.Equal(t, "c1", ev.ClientID)
		assert.Equal(t, hubA.InstanceID(), ev.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("remote instance did not receive the event")
	}

	// the local delivery happens once; the echo from Redis is ignored
	require.Len(t, gotA, 1)
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, gotA, 1)
}
