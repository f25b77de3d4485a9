package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"shepardviz/src/domain"
	"shepardviz/src/infra/kafka"
)

const forestSynthesizedEventType = "forest.synthesized"

// ForestEventPublisher publica eventos de síntese no broker para quem
// acompanha builds (dashboards, auditoria).
type ForestEventPublisher struct {
	logger      *slog.Logger
	kafkaClient *kafka.KafkaClient
	topic       string
}

func NewForestEventPublisher(
	logger *slog.Logger,
	kafkaClient *kafka.KafkaClient,
	topic string,
) *ForestEventPublisher {
	return &ForestEventPublisher{
		logger:      logger,
		kafkaClient: kafkaClient,
		topic:       topic,
	}
}

// PublishForestSynthesized publica um evento por build completo.
func (p *ForestEventPublisher) PublishForestSynthesized(ctx context.Context, event domain.ForestSynthesizedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("ForestEventPublisher.PublishForestSynthesized - failed to marshal event: %w", err)
	}

	eventID := uuid.NewString()

	// Headers para filtragem no broker (estilo SNS).
	message := kafka.Message{
		Key:   forestSynthesizedEventType,
		Value: eventBytes,
		Headers: map[string]string{
			"event_type":     forestSynthesizedEventType,
			"source_service": "shepardviz",
			"schema_version": "v1",
			"event_id":       eventID,
		},
	}

	if err := p.kafkaClient.Producer([]kafka.Message{message}, p.topic); err != nil {
		p.logger.Error("Failed to publish forest synthesized event",
			"error", err,
			"topic", p.topic,
			"event_id", eventID)
		return fmt.Errorf("failed to publish event to topic %s: %w", p.topic, err)
	}

	p.logger.Info("Published forest synthesized event",
		"topic", p.topic,
		"event_id", eventID,
		"tree_nodes", event.TreeNodes,
		"graph_edges", event.GraphEdges)

	return nil
}
