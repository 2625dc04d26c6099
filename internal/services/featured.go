// internal/services/featured.go
package services

import (
	"context"

	"github.com/abinexis/homepage-admin/internal/models"
)

// FeaturedEditor edits the featured products collection.
type FeaturedEditor struct {
	*Editor[models.Product]
}

func NewFeaturedEditor(deps EditorDeps) *FeaturedEditor {
	return &FeaturedEditor{
		Editor: NewEditor(CollectionSpec[models.Product]{
			Name: models.CollectionFeatured,
			Key:  func(p models.Product) string { return p.ID },
			Extract: func(_ context.Context, doc *models.HomepageDocument, _ []models.Product) []models.Product {
				return nonNil(doc.FeaturedProducts)
			},
		}, deps),
	}
}

// AddItem features product. Adding a product that is already featured is
// a no-op.
func (f *FeaturedEditor) AddItem(ctx context.Context, product models.Product) error {
	return f.apply(ctx, mutation[models.Product]{
		op:         string(models.ActionAdd),
		resourceID: product.ID,
		skip: func(items []models.Product) bool {
			return containsProduct(items, product.ID)
		},
		optimistic: func(items []models.Product) []models.Product {
			return append(items, product)
		},
		call: func(ctx context.Context, token string) ([]models.Product, error) {
			return f.api.UpdateFeatured(ctx, token, product.ID, models.ActionAdd)
		},
	})
}

// RemoveItem always asks the backend, even when productID is not featured
// locally.
func (f *FeaturedEditor) RemoveItem(ctx context.Context, productID string) error {
	return f.apply(ctx, mutation[models.Product]{
		op:         string(models.ActionRemove),
		resourceID: productID,
		optimistic: func(items []models.Product) []models.Product {
			return withoutProduct(items, productID)
		},
		call: func(ctx context.Context, token string) ([]models.Product, error) {
			return f.api.UpdateFeatured(ctx, token, productID, models.ActionRemove)
		},
	})
}

func containsProduct(items []models.Product, id string) bool {
	for _, p := range items {
		if p.ID == id {
			return true
		}
	}
	return false
}

func withoutProduct(items []models.Product, id string) []models.Product {
	out := items[:0]
	for _, p := range items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
