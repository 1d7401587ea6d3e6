package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/table-booking/utils"
)

// KafkaPublisher forwards lifecycle events to a topic read by the notification workers.
// Messages are keyed by booking id so one booking's events stay ordered.
type KafkaPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					utils.ErrorLogger.Printf("kafka delivery of %d booking events failed: %v", len(messages), err)
				}
			},
		},
		timeout: 5 * time.Second,
	}
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(value string) []string {
	var brokers []string
	for _, b := range strings.Split(value, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func EncodeMessage(e Event) (kafka.Message, error) {
	env := e.Envelope()
	body, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(env.ResourceID),
		Value: body,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(env.Entity)},
			{Key: "action", Value: []byte(env.Action)},
		},
	}, nil
}

// Handle is a Bus subscriber.
func (p *KafkaPublisher) Handle(e Event) {
	msg, err := EncodeMessage(e)
	if err != nil {
		utils.ErrorLogger.Printf("encode booking event %s/%d: %v", e.Type, e.BookingID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		utils.ErrorLogger.Printf("publish booking event %s/%d: %v", e.Type, e.BookingID, err)
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
