package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is satisfied by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// EventPublisher announces confirmed orders on the order-placed topic
// so downstream services (notifications, analytics) can react. Publish
// failures are logged and never fail the order itself.
type EventPublisher struct {
	writer messageWriter
	log    *zap.Logger
}

func NewEventPublisher(brokers []string, log *zap.Logger) *EventPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-placed",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &EventPublisher{writer: w, log: log}
}

type placedEvent struct {
	OrderID  string    `json:"order_id"`
	BuyerID  string    `json:"buyer_id"`
	Items    []Item    `json:"items"`
	PlacedAt time.Time `json:"placed_at"`
}

func (p *EventPublisher) OrderPlaced(ctx context.Context, buyerID string, conf Confirmation, items []Item) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(placedEvent{
		OrderID:  conf.OrderID,
		BuyerID:  buyerID,
		Items:    items,
		PlacedAt: time.Now().UTC(),
	})
	if err != nil {
		p.log.Warn("marshal order event failed", zap.Error(err))
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(buyerID),
		Value: payload,
	})
	if err != nil {
		p.log.Warn("publish order event failed",
			zap.String("order_id", conf.OrderID), zap.Error(err))
	}
}

func (p *EventPublisher) Close() error {
	if w, ok := p.writer.(*kafka.Writer); ok {
		return w.Close()
	}
	return nil
}
