// Package event publishes storefront domain events. Publishing never blocks
// or fails the originating operation; callers log and move on.
package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
	pkgkafka "github.com/theBillionaireApostle/Rani-Riwaaj-sub000/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicProductCreated  = "storefront.product.created"
	TopicProductUpdated  = "storefront.product.updated"
	TopicProductDeleted  = "storefront.product.deleted"
	TopicCartUpdated     = "storefront.cart.updated"
	TopicWishlistUpdated = "storefront.wishlist.updated"
)

// Aggregate type constants.
const (
	AggregateTypeProduct  = "product"
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// Source identifier for events originating from this service.
const Source = "storefront"

// ProductData is the payload for product.* events.
type ProductData struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Price      int64   `json:"price"`
	CategoryID *string `json:"category_id,omitempty"`
	JustIn     bool    `json:"just_in"`
}

// CollectionData is the payload for cart.updated and wishlist.updated.
type CollectionData struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
	Total  int64  `json:"total,omitempty"`
}

// Publisher is the port services publish through; it lets handler tests run
// without Kafka.
type Publisher interface {
	ProductCreated(ctx context.Context, p *domain.Product) error
	ProductUpdated(ctx context.Context, p *domain.Product) error
	ProductDeleted(ctx context.Context, id string) error
	CartUpdated(ctx context.Context, userID string, items []domain.CartItem) error
	WishlistUpdated(ctx context.Context, userID string, items []domain.WishlistItem) error
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

func productData(p *domain.Product) ProductData {
	return ProductData{
		ID:         p.ID,
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      int64(p.Price),
		CategoryID: p.CategoryID,
		JustIn:     p.JustIn,
	}
}

// ProductCreated publishes a product.created event.
func (p *Producer) ProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, productData(product))
}

// ProductUpdated publishes a product.updated event.
func (p *Producer) ProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, productData(product))
}

// ProductDeleted publishes a product.deleted event.
func (p *Producer) ProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicProductDeleted, id, AggregateTypeProduct, map[string]string{"id": id})
}

// CartUpdated publishes a cart.updated event.
func (p *Producer) CartUpdated(ctx context.Context, userID string, items []domain.CartItem) error {
	data := CollectionData{
		UserID: userID,
		Count:  domain.CartCount(items),
		Total:  int64(domain.CartTotal(items)),
	}
	return p.publish(ctx, TopicCartUpdated, userID, AggregateTypeCart, data)
}

// WishlistUpdated publishes a wishlist.updated event.
func (p *Producer) WishlistUpdated(ctx context.Context, userID string, items []domain.WishlistItem) error {
	data := CollectionData{UserID: userID, Count: len(items)}
	return p.publish(ctx, TopicWishlistUpdated, userID, AggregateTypeWishlist, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}
