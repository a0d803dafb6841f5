package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	"github.com/alumnihub/alumnihub-api/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

const (
	kafkaSinkName     = "kafka"
	kafkaWriteTimeout = 5 * time.Second
)

// Writer is the subset of kafka.Writer the sink needs, so tests can swap it out
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes notifications to a topic keyed by recipient,
// so one user's notifications stay ordered within a partition
type KafkaSink struct {
	writer Writer
}

// NewKafkaSink creates a sink writing to topic on brokers
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return NewKafkaSinkWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: kafkaWriteTimeout,
		BatchTimeout: 10 * time.Millisecond,
	})
}

// NewKafkaSinkWithWriter allows injecting a test writer
func NewKafkaSinkWithWriter(w Writer) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (k *KafkaSink) Send(ctx context.Context, n *models.Notification) error {
	value, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("kafka sink: failed to encode notification: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, kafkaWriteTimeout)
	defer cancel()

	err = k.writer.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(n.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(n.Type)},
		},
		Time: n.CreatedAt,
	})
	metrics.NotificationDeliveries.WithLabelValues(kafkaSinkName, metrics.StatusLabel(err)).Inc()
	if err != nil {
		return fmt.Errorf("kafka sink: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer
func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
