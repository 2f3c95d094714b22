package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/bet-companion-platform/pkg/contracts/events"
)

type KafkaPublisher struct {
	RegisteredWriter *kafka.Writer
	SettledWriter    *kafka.Writer
}

func NewKafkaPublisher(registered, settled *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{RegisteredWriter: registered, SettledWriter: settled}
}

func (p *KafkaPublisher) PublishBetRegistered(ctx context.Context, e events.BetRegistered) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.RegisteredWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.SettledWriter.WriteMessages(ctx, kafka.Message{Key: []byte(e.BetID), Value: b})
}
