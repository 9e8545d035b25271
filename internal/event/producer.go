// Package event publishes wishlist domain events to Kafka.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/wishlist"
	"github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Topics for wishlist domain events.
var (
	TopicItemAdded   = kafka.Topic("wishlist", "item_added")
	TopicItemRemoved = kafka.Topic("wishlist", "item_removed")
)

// AggregateTypeProduct is the aggregate a wishlist event refers to.
const AggregateTypeProduct = "product"

// SourceStorefront identifies events originating from this service.
const SourceStorefront = "storefront"

// Publisher sends an event to a topic. *kafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// WishlistChangedData is the payload of both wishlist events.
type WishlistChangedData struct {
	ProductID  string `json:"product_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// Producer publishes wishlist events. A Producer without a publisher drops
// every event.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a wishlist event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{publisher: publisher, logger: logger}
}

// PublishWishlistChanged publishes item_added or item_removed for change.
func (p *Producer) PublishWishlistChanged(ctx context.Context, change wishlist.Change) error {
	if p.publisher == nil {
		return nil
	}

	topic := TopicItemRemoved
	if change.Added {
		topic = TopicItemAdded
	}

	data := WishlistChangedData{ProductID: change.ProductID, Wishlisted: change.Added}
	evt, err := kafka.NewEvent(topic, change.ProductID, AggregateTypeProduct, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		evt.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published wishlist event",
		slog.String("topic", topic),
		slog.String("product_id", change.ProductID),
	)
	return nil
}

// Listener returns a wishlist listener that publishes every change under ctx.
// Publish failures are logged and never undo the change.
func (p *Producer) Listener(ctx context.Context) wishlist.Listener {
	return func(change wishlist.Change) {
		if err := p.PublishWishlistChanged(ctx, change); err != nil {
			logger.FromContext(ctx).WarnContext(ctx, "wishlist event not published",
				slog.String("product_id", change.ProductID),
				slog.String("error", err.Error()),
			)
		}
	}
}
