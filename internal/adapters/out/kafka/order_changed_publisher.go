// Package kafka publishes confirmed order events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// OrderChangedMessage is the value of every message on the order-changed topic.
type OrderChangedMessage struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	TransactionHash string    `json:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber"`
	Code            string    `json:"code"`
	DistributorID   string    `json:"distributorId"`
	ReceptorID      string    `json:"receptorId"`
	Creator         string    `json:"creator,omitempty"`
	From            string    `json:"from,omitempty"`
	To              string    `json:"to,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderChangedPublisher implements ports.EventPublisher. Messages are keyed by
// order code so the events of one order stay in one partition, in order.
type OrderChangedPublisher struct {
	writer messageWriter
	now    func() time.Time
}

func NewOrderChangedPublisher(brokers []string, topic string) (*OrderChangedPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	return newOrderChangedPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}), nil
}

func newOrderChangedPublisher(w messageWriter) *OrderChangedPublisher {
	return &OrderChangedPublisher{writer: w, now: time.Now}
}

func (p *OrderChangedPublisher) Publish(ctx context.Context, receipt *ledger.Receipt) error {
	if receipt == nil || len(receipt.Events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(receipt.Events))
	for _, ev := range receipt.Events {
		value, err := json.Marshal(p.message(receipt, ev))
		if err != nil {
			return fmt.Errorf("marshal %s: %w", ev.Kind, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(ev.Code.String()),
			Value: value,
		})
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *OrderChangedPublisher) Close() error {
	return p.writer.Close()
}

func (p *OrderChangedPublisher) message(receipt *ledger.Receipt, ev order.Event) OrderChangedMessage {
	msg := OrderChangedMessage{
		ID:              uuid.NewString(),
		Kind:            string(ev.Kind),
		TransactionHash: receipt.Hash.String(),
		BlockNumber:     receipt.BlockNumber,
		Code:            ev.Code.String(),
		DistributorID:   ev.DistributorID.String(),
		ReceptorID:      ev.ReceptorID.String(),
		OccurredAt:      p.now().UTC(),
	}
	switch ev.Kind {
	case order.EventCreated:
		msg.Creator = ev.Creator.String()
	case order.EventStatusChanged:
		msg.From = ev.From.String()
		msg.To = ev.To.String()
	}
	return msg
}
