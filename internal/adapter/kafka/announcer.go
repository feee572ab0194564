// Package kafka publishes storm-file announcements so downstream extraction
// services can pick up freshly split tracks without polling the filesystem.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-track-splitter/internal/besttrack"
	"github.com/couchcryptid/storm-track-splitter/internal/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Announcer produces one message per completed storm file.
// It implements splitter.Announcer.
type Announcer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAnnouncer creates a Kafka producer for the configured announce topic.
func NewAnnouncer(cfg *config.Config, logger *slog.Logger) *Announcer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAnnounceTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Announcer{writer: w, logger: logger}
}

// announcement is the JSON payload published for each storm file.
type announcement struct {
	StormID     string    `json:"storm_id"`
	Name        string    `json:"name"`
	TrackNumber string    `json:"track_number"`
	Path        string    `json:"path"`
	Lines       int       `json:"lines"`
	ProcessedAt time.Time `json:"processed_at"`
}

// Announce serializes and publishes a storm-file notification.
func (a *Announcer) Announce(ctx context.Context, file besttrack.StormFile) error {
	msg, err := serializeToMessage(file)
	if err != nil {
		return err
	}
	return a.writer.WriteMessages(ctx, msg)
}

func (a *Announcer) Close() error {
	return a.writer.Close()
}

// serializeToMessage marshals a StormFile into a Kafka message keyed by
// storm identifier.
func serializeToMessage(file besttrack.StormFile) (kafkago.Message, error) {
	processedAt := besttrack.Now()
	data, err := json.Marshal(announcement{
		StormID:     file.Header.ID,
		Name:        file.Header.Name,
		TrackNumber: file.Header.TrackNumber,
		Path:        file.Path,
		Lines:       file.Lines,
		ProcessedAt: processedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize storm file: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(file.Header.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "storm_id", Value: []byte(file.Header.ID)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
