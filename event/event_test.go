package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testEvent struct {
	N     int
	Final bool
}

func (e *testEvent) Clone() Event {
	return &testEvent{
		N:     e.N,
		Final: e.Final,
	}
}

func drain(c <-chan Event) []*testEvent {
	events := []*testEvent{}

	for e := range c {
		events = append(events, e.(*testEvent))
	}

	return events
}

func TestPublish(t *testing.T) {
	w := NewPubSub(0)

	c1, cancel1 := w.Subscribe()
	c2, cancel2 := w.Subscribe()

	require.Equal(t, 2, w.Subscribers())

	require.NoError(t, w.Publish(&testEvent{N: 1}))

	require.Equal(t, 1, (<-c1).(*testEvent).N)
	require.Equal(t, 1, (<-c2).(*testEvent).N)

	cancel1()
	cancel2()

	require.Equal(t, 0, w.Subscribers())

	_, ok := <-c1
	require.False(t, ok)
}

func TestPublishDropsForSlowSubscriber(t *testing.T) {
	w := NewPubSub(2)

	c, _ := w.Subscribe()

	for i := 1; i <= 5; i++ {
		require.NoError(t, w.Publish(&testEvent{N: i}))
	}

	require.Equal(t, 2, len(c))
}

func TestPublishFinalFullBuffer(t *testing.T) {
	w := NewPubSub(2)

	c, _ := w.Subscribe()

	require.NoError(t, w.Publish(&testEvent{N: 1}))
	require.NoError(t, w.Publish(&testEvent{N: 2}))
	require.NoError(t, w.PublishFinal(&testEvent{N: 3, Final: true}))

	events := drain(c)

	require.Equal(t, 2, len(events))
	require.Equal(t, 2, events[0].N)
	require.True(t, events[1].Final)
}

func TestPublishAfterFinal(t *testing.T) {
	w := NewPubSub(0)

	require.NoError(t, w.PublishFinal(&testEvent{N: 1, Final: true}))
	require.Error(t, w.Publish(&testEvent{N: 2}))
	require.Error(t, w.PublishFinal(&testEvent{N: 3, Final: true}))
}

func TestLateSubscriber(t *testing.T) {
	w := NewPubSub(0)

	require.NoError(t, w.Publish(&testEvent{N: 1}))
	require.NoError(t, w.PublishFinal(&testEvent{N: 2, Final: true}))

	c, cancel := w.Subscribe()
	defer cancel()

	events := drain(c)

	require.Equal(t, 1, len(events))
	require.Equal(t, 2, events[0].N)
	require.True(t, events[0].Final)
}

func TestClose(t *testing.T) {
	w := NewPubSub(0)

	c, cancel := w.Subscribe()

	w.Close()

	_, ok := <-c
	require.False(t, ok)

	// Unsubscribing after close is a no-op
	cancel()

	c, _ = w.Subscribe()
	require.Equal(t, 0, len(drain(c)))
}
