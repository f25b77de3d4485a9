package consumers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"shepardviz/src/infra/kafka"
	"shepardviz/src/repositories"
)

// SourceChangeMessage representa o schema da mensagem de mudança na fonte.
// Produzida por quem observa o ShepardDB (webhooks, jobs de sync).
type SourceChangeMessage struct {
	CollectionID string `json:"collection_id"`
	ChangeType   string `json:"change_type"`
}

// SourceEventsConsumer derruba o cache de uma collection quando a fonte
// muda, para o próximo build enxergar dados frescos.
type SourceEventsConsumer struct {
	logger       *slog.Logger
	cachedSource *repositories.CachedSourceRepository
}

func NewSourceEventsConsumer(
	logger *slog.Logger,
	cachedSource *repositories.CachedSourceRepository,
) *SourceEventsConsumer {
	return &SourceEventsConsumer{
		logger:       logger,
		cachedSource: cachedSource,
	}
}

func (c *SourceEventsConsumer) Start(ctx context.Context, kafkaClient *kafka.KafkaClient, topic string) error {
	c.logger.Info("Starting source events consumer", "topic", topic)

	handler := func(messages []kafka.Message) error {
		return c.handleMessages(ctx, messages)
	}

	return kafkaClient.Consumer(ctx, handler, topic)
}

func (c *SourceEventsConsumer) handleMessages(ctx context.Context, messages []kafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	c.logger.Info("Processing source change batch", "count", len(messages))

	// Deduplica por collection: um batch costuma repetir a mesma collection.
	collectionIDs := make(map[string]struct{})

	for _, msg := range messages {
		var change SourceChangeMessage
		if err := json.Unmarshal(msg.Value, &change); err != nil {
			c.logger.Error("Failed to unmarshal source change message",
				"error", err,
				"key", msg.Key,
				"value", string(msg.Value))
			return fmt.Errorf("failed to unmarshal message with key %s: %w", msg.Key, err)
		}

		if change.CollectionID == "" {
			c.logger.Warn("Skipping source change without collection_id", "key", msg.Key)
			continue
		}

		collectionIDs[change.CollectionID] = struct{}{}
	}

	for collectionID := range collectionIDs {
		if err := c.cachedSource.InvalidateCollection(ctx, collectionID); err != nil {
			c.logger.Error("Failed to invalidate collection cache",
				"collection_id", collectionID,
				"error", err)
			return fmt.Errorf("failed to invalidate cache for collection %s: %w", collectionID, err)
		}

		c.logger.Info("Invalidated collection cache", "collection_id", collectionID)
	}

	return nil
}
