// Package report publishes data-quality events (directory misses, empty
// documents) to the report queue so the maintainer hears about them. A
// publish failure is logged and swallowed: reporting never fails a parse.
package report

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/farmaguardia/segovia/backend/internal/config"
	"github.com/farmaguardia/segovia/backend/internal/parser"
)

const QueueName = "report_queue"

const (
	EventDirectoryMiss = "directory_miss"
	EventEmptyDocument = "empty_document"
)

type Event struct {
	Type       string                 `json:"type"`
	LocationID string                 `json:"locationID"`
	Misses     []parser.DirectoryMiss `json:"misses,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

type Publisher struct {
	cfg     *config.Config
	channel *amqp.Channel
}

func NewPublisher(cfg *config.Config, channel *amqp.Channel) *Publisher {
	return &Publisher{cfg: cfg, channel: channel}
}

func (p *Publisher) ReportMisses(ctx context.Context, misses []parser.DirectoryMiss) {
	if len(misses) == 0 {
		return
	}
	p.publish(ctx, Event{
		Type:       EventDirectoryMiss,
		LocationID: misses[0].LocationID,
		Misses:     misses,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) ReportEmptyDocument(ctx context.Context, locationID string) {
	p.publish(ctx, Event{
		Type:       EventEmptyDocument,
		LocationID: locationID,
		OccurredAt: time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		slog.Error("no se pudo serializar el evento", "type", event.Type, "error", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		publishCtx,
		"",
		QueueName,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("no se pudo publicar el evento", "type", event.Type, "location", event.LocationID, "error", err)
	}
}
