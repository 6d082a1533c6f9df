package order

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type writerMock struct {
	messages []kafka.Message
	err      error
}

func (w *writerMock) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func TestOrderPlaced_PublishesEvent(t *testing.T) {
	w := &writerMock{}
	p := &EventPublisher{writer: w, log: zap.NewNop()}

	items := []Item{{ListingID: 1, Quantity: 2}}
	p.OrderPlaced(context.Background(), "buyer-1", Confirmation{OrderID: "ord-1"}, items)

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("buyer-1"), w.messages[0].Key)

	var event placedEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &event))
	assert.Equal(t, "ord-1", event.OrderID)
	assert.Equal(t, items, event.Items)
	assert.False(t, event.PlacedAt.IsZero())
}

func TestOrderPlaced_WriteFailureDoesNotPanic(t *testing.T) {
	p := &EventPublisher{writer: &writerMock{err: errors.New("broker down")}, log: zap.NewNop()}
	p.OrderPlaced(context.Background(), "buyer-1", Confirmation{OrderID: "ord-1"}, nil)
}

func TestOrderPlaced_NilPublisherIsNoOp(t *testing.T) {
	var p *EventPublisher
	p.OrderPlaced(context.Background(), "buyer-1", Confirmation{}, nil)
}
