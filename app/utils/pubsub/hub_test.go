package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub()
	l, unlisten := hub.listen([]string{"cart_items", "products"})
	defer unlisten()

	for i := 0; i < 10; i++ {
		hub.Publish("cart_items", "products")
	}

	assert.Len(t, l.notify, 1, "pending wake-ups collapse into one")
}

func TestListenersAreRemoved(t *testing.T) {
	hub := NewHub()
	_, first := hub.listen([]string{"orders"})
	_, second := hub.listen([]string{"orders", "order_items"})

	assert.Equal(t, 2, hub.Listeners("orders"))
	assert.Equal(t, 1, hub.Listeners("order_items"))

	first()
	second()
	assert.Zero(t, hub.Listeners("orders"))
	assert.Zero(t, hub.Listeners("order_items"))
}

func TestPublishOnlyWakesMatchingTables(t *testing.T) {
	hub := NewHub()
	l, unlisten := hub.listen([]string{"orders"})
	defer unlisten()

	hub.Publish("cart_items")
	assert.Empty(t, l.notify)

	hub.Publish("orders")
	assert.Len(t, l.notify, 1)
}

func TestNilHubPublish(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() { hub.Publish("orders") })
}
