package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_PublishInSubscriptionOrder(t *testing.T) {
	n := NewNotifier()

	var got []string
	n.Subscribe(func(ctx context.Context, ev Event) {
		got = append(got, "first:"+ev.OperatorID)
	})
	n.Subscribe(func(ctx context.Context, ev Event) {
		got = append(got, "second:"+ev.OperatorID)
	})

	n.Publish(context.Background(), Event{OperatorID: "1", Authenticated: true})

	assert.Equal(t, []string{"first:1", "second:1"}, got)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := NewNotifier()

	calls := 0
	unsubscribe := n.Subscribe(func(ctx context.Context, ev Event) {
		calls++
	})

	n.Publish(context.Background(), Event{OperatorID: "1", Authenticated: true})
	unsubscribe()
	unsubscribe()
	n.Publish(context.Background(), Event{OperatorID: "1"})

	assert.Equal(t, 1, calls)
}
