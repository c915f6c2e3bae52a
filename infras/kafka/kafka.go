package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"atrium/config"
)

type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	message := kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}

	return message, nil
}

// Publisher emits domain events to an external topic. Publishing is
// best-effort: the reservation flow never fails because a broker is down.
type Publisher interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) error
}

type publisherImpl struct {
	config  *config.Config
	address net.Addr
}

func New(config *config.Config) Publisher {
	if !config.External.Kafka.Enable {
		log.Info().Msg("Kafka publisher disabled, events will be dropped")

		return &noopPublisher{}
	}

	log.Info().Strs("brokers", config.External.Kafka.Brokers).Msg("Kafka publisher initialized")

	return &publisherImpl{
		config:  config,
		address: kafkaGo.TCP(config.External.Kafka.Brokers...),
	}
}

func (k *publisherImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	writer := &kafkaGo.Writer{
		Addr:                   k.address,
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		Async:                  true,
	}

	msgs := []kafkaGo.Message{}

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	err = writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Msg("Sent message successfully.")

	return nil
}

type noopPublisher struct{}

func (n *noopPublisher) SendMessages(_ context.Context, _ string, _ ...Message) error {
	return nil
}
