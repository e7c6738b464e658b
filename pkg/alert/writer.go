package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Advisory is the event published when a risk assessment crosses into High
// or Critical. Downstream translation/TTS/SMS collaborators consume it
// unmodified.
type Advisory struct {
	Tier            string    `json:"tier"`
	Drivers         []string  `json:"drivers"`
	Recommendations []string  `json:"recommendations"`
	RouteStrategy   string    `json:"route_strategy,omitempty"`
	ShelterName     string    `json:"shelter_name,omitempty"`
	IssuedAt        time.Time `json:"issued_at"`
}

// Writer produces advisories to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Publish(ctx context.Context, adv Advisory) error {
	data, err := json.Marshal(adv)
	if err != nil {
		return fmt.Errorf("serialize advisory: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(adv.Tier),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "issued_at", Value: []byte(adv.IssuedAt.Format(time.RFC3339))},
		},
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}
