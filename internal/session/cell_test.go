package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCell_ReplaysCurrentValueToLateSubscriber(t *testing.T) {
	c := NewCell("a")
	c.Set("b")

	ch, cancel := c.Subscribe()
	defer cancel()

	assert.Equal(t, "b", <-ch)
}

func TestCell_SlowSubscriberSeesLatestOnly(t *testing.T) {
	c := NewCell(0)
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Set(1)
	c.Set(2)
	c.Set(3)

	assert.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected backlog value %d", v)
	default:
	}
}

func TestCell_CancelClosesChannel(t *testing.T) {
	c := NewCell(0)
	ch, cancel := c.Subscribe()
	<-ch

	cancel()
	cancel()
	c.Set(5)

	_, open := <-ch
	assert.False(t, open)
}
