package producer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/bet-companion-platform/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) PublishAnalysisGenerated(ctx context.Context, e events.AnalysisGenerated) error {
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.MatchID), Value: b})
}
