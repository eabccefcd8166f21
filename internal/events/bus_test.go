package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversToSubscribersInOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe(VisionUpdated, func(e Event) { got = append(got, "first:"+e.UserID) })
	b.Subscribe(VisionUpdated, func(e Event) { got = append(got, "second:"+e.UserID) })

	b.Publish(Event{Name: VisionUpdated, UserID: "user-1"})

	assert.Equal(t, []string{"first:user-1", "second:user-1"}, got)
}

func TestBusIsolatesEventNames(t *testing.T) {
	b := NewBus()
	called := false
	b.Subscribe(VisionImageCreated, func(Event) { called = true })

	b.Publish(Event{Name: VisionUpdated})
	assert.False(t, called)

	b.Publish(Event{Name: VisionImageCreated})
	assert.True(t, called)
}

func TestBusPayloadCarriesNewValue(t *testing.T) {
	b := NewBus()
	var payload any
	b.Subscribe(VisionUpdated, func(e Event) { payload = e.Payload })

	b.Publish(Event{Name: VisionUpdated, Payload: []string{"a", "b"}})
	assert.Equal(t, []string{"a", "b"}, payload)
}
