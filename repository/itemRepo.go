package repository

import (
	"context"

	"k8s-demo/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultItems is the catalog served when no other collection is supplied.
func DefaultItems() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Kubernetes", Description: "Container orchestration platform", Icon: "☸️"},
		{ID: 2, Name: "Docker", Description: "Containerization technology", Icon: "🐳"},
		{ID: 3, Name: "Node.js", Description: "JavaScript runtime", Icon: "💚"},
		{ID: 4, Name: "React", Description: "Frontend library", Icon: "⚛️"},
	}
}

// ItemRepository owns a fixed, ordered item collection. It is read-only after
// construction, so concurrent reads need no locking.
type ItemRepository struct {
	Tracer trace.Tracer
	items  []models.Item
}

func NewItemRepository(tracer trace.Tracer, items []models.Item) *ItemRepository {
	owned := make([]models.Item, len(items))
	copy(owned, items)

	return &ItemRepository{
		Tracer: tracer,
		items:  owned,
	}
}

// FetchItems returns the collection in insertion order. The returned slice is
// a copy; callers may not alter the stored records through it.
func (repo *ItemRepository) FetchItems(ctx context.Context) []models.Item {
	_, span := repo.Tracer.Start(ctx, "ItemRepository.FetchItems")
	defer span.End()

	out := make([]models.Item, len(repo.items))
	copy(out, repo.items)

	span.SetAttributes(attribute.Int("items.count", len(out)))
	return out
}

// FetchItem returns the first item whose id matches.
func (repo *ItemRepository) FetchItem(ctx context.Context, id int) (models.Item, bool) {
	_, span := repo.Tracer.Start(ctx, "ItemRepository.FetchItem", trace.WithAttributes(attribute.Int("item.id", id)))
	defer span.End()

	for _, item := range repo.items {
		if item.ID == id {
			return item, true
		}
	}

	return models.Item{}, false
}
