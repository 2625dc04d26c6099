// internal/services/offers.go
package services

import (
	"context"

	"github.com/abinexis/homepage-admin/internal/models"
)

// OffersEditor edits today's offers. Every offer carries its display
// price; prices are looked up on load and carried over between server
// responses of the same page load.
type OffersEditor struct {
	*Editor[models.PricedOffer]
	pricing *PricingDecorator
}

func NewOffersEditor(deps EditorDeps, pricing *PricingDecorator) *OffersEditor {
	o := &OffersEditor{pricing: pricing}
	o.Editor = NewEditor(CollectionSpec[models.PricedOffer]{
		Name: models.CollectionOffers,
		Key:  models.PricedOffer.Key,
		Extract: func(ctx context.Context, doc *models.HomepageDocument, _ []models.PricedOffer) []models.PricedOffer {
			return o.pricing.Decorate(ctx, ToOffers(doc.TodayOffers))
		},
	}, deps)
	return o
}

// AddItem prices product before showing it, so the optimistic entry
// already has correct prices. A failed price lookup aborts the add.
func (o *OffersEditor) AddItem(ctx context.Context, product models.Product) error {
	var priced models.PricedOffer
	return o.apply(ctx, mutation[models.PricedOffer]{
		op:         string(models.ActionAdd),
		resourceID: product.ID,
		skip: func(items []models.PricedOffer) bool {
			return containsOffer(items, product.ID)
		},
		prepare: func(ctx context.Context) error {
			var err error
			priced, err = o.pricing.PriceOne(ctx, product)
			return err
		},
		optimistic: func(items []models.PricedOffer) []models.PricedOffer {
			return append(items, priced)
		},
		call: func(ctx context.Context, token string) ([]models.PricedOffer, error) {
			products, err := o.api.UpdateOffers(ctx, token, product.ID, models.ActionAdd)
			if err != nil {
				return nil, err
			}
			return o.decorate(ctx, products), nil
		},
	})
}

func (o *OffersEditor) RemoveItem(ctx context.Context, productID string) error {
	return o.apply(ctx, mutation[models.PricedOffer]{
		op:         string(models.ActionRemove),
		resourceID: productID,
		optimistic: func(items []models.PricedOffer) []models.PricedOffer {
			out := items[:0]
			for _, item := range items {
				if item.ID != productID {
					out = append(out, item)
				}
			}
			return out
		},
		call: func(ctx context.Context, token string) ([]models.PricedOffer, error) {
			products, err := o.api.UpdateOffers(ctx, token, productID, models.ActionRemove)
			if err != nil {
				return nil, err
			}
			return o.decorate(ctx, products), nil
		},
	})
}

// decorate prices a server collection, reusing prices already known
// locally.
func (o *OffersEditor) decorate(ctx context.Context, products []models.Product) []models.PricedOffer {
	return o.pricing.Decorate(ctx, carryPrices(o.Items(), ToOffers(products)))
}

func containsOffer(items []models.PricedOffer, id string) bool {
	for _, o := range items {
		if o.ID == id {
			return true
		}
	}
	return false
}
