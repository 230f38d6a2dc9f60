package store

import (
	"context"

	"github.com/me/showcase/pkg/model"
)

// Store defines the persistence layer for listing content.
type Store interface {
	// Items
	UpsertItem(ctx context.Context, item *model.ContentItem) error
	GetItem(ctx context.Context, collection, slug string) (*model.ContentItem, error)
	ListItems(ctx context.Context, collection string) ([]*model.ContentItem, error)
	DeleteItem(ctx context.Context, collection, slug string) (bool, error)

	// Taxonomy terms
	UpsertCategory(ctx context.Context, cat *model.Category) error
	ListCategories(ctx context.Context, taxonomy string) ([]*model.Category, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
