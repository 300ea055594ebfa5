package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishOrder(t *testing.T) {
	h := NewHub[int]()

	var order []string
	h.Subscribe(func(v int) { order = append(order, "first") })
	h.Subscribe(func(v int) { order = append(order, "second") })
	h.Subscribe(func(v int) { order = append(order, "third") })

	h.Publish(1)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub[string]()

	var got []string
	unsubA := h.Subscribe(func(v string) { got = append(got, "a:"+v) })
	h.Subscribe(func(v string) { got = append(got, "b:"+v) })

	h.Publish("one")
	unsubA()
	h.Publish("two")

	assert.Equal(t, []string{"a:one", "b:one", "b:two"}, got)
	assert.Equal(t, 1, h.SubscriberCount())

	// Unsubscribing twice is harmless
	unsubA()
	assert.Equal(t, 1, h.SubscriberCount())
}

func TestHub_Close(t *testing.T) {
	h := NewHub[int]()

	calls := 0
	h.Subscribe(func(v int) { calls++ })
	h.Subscribe(func(v int) { calls++ })

	h.Close()
	h.Publish(1)

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, h.SubscriberCount())
}
