// internal/services/pricing.go
package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abinexis/homepage-admin/internal/metrics"
	"github.com/abinexis/homepage-admin/internal/models"
)

const defaultPricingConcurrency = 8

// PricingDecorator attaches display prices to today's offers.
type PricingDecorator struct {
	api         HomepageAPI
	concurrency int
	log         *logrus.Entry
}

func NewPricingDecorator(api HomepageAPI, concurrency int) *PricingDecorator {
	if concurrency < 1 {
		concurrency = defaultPricingConcurrency
	}
	return &PricingDecorator{
		api:         api,
		concurrency: concurrency,
		log:         logrus.WithField("component", "pricing"),
	}
}

// ComputeDiscount returns the whole percent saved, or 0 unless
// original > display > 0.
func ComputeDiscount(display, original float64) int {
	if display <= 0 || original <= display {
		return 0
	}
	o := decimal.NewFromFloat(original)
	d := decimal.NewFromFloat(display)
	percent := o.Sub(d).Div(o).Mul(decimal.NewFromInt(100)).Round(0)
	return int(percent.IntPart())
}

// PriceOne looks up the price of a single product with its default filter
// selection.
func (d *PricingDecorator) PriceOne(ctx context.Context, product models.Product) (models.PricedOffer, error) {
	details, err := d.api.GetPriceDetails(ctx, product.ID, product.DefaultFilterSelection())
	metrics.RecordPriceLookup(err == nil)
	if err != nil {
		return models.PricedOffer{}, err
	}
	if details == nil {
		return models.PricedOffer{}, errors.New("empty price details")
	}

	return models.PricedOffer{
		Product:       product,
		DisplayPrice:  details.EffectivePrice,
		OriginalPrice: details.NormalPrice,
		Discount:      ComputeDiscount(details.EffectivePrice, details.NormalPrice),
		Priced:        true,
	}, nil
}

// Decorate prices every offer that is not priced yet. Lookups run
// concurrently and the result keeps input order. A failed lookup leaves
// that offer at zero prices; the others are unaffected.
func (d *PricingDecorator) Decorate(ctx context.Context, offers []models.PricedOffer) []models.PricedOffer {
	out := make([]models.PricedOffer, len(offers))
	copy(out, offers)

	g := new(errgroup.Group)
	g.SetLimit(d.concurrency)
	for i := range out {
		if out[i].Priced {
			continue
		}
		i := i
		g.Go(func() error {
			priced, err := d.PriceOne(ctx, out[i].Product)
			if err != nil {
				decErr := &DecorationError{ProductID: out[i].ID, Err: err}
				d.log.WithError(decErr).Warn("Offer price lookup failed")
				out[i] = models.PricedOffer{Product: out[i].Product, Priced: true}
				return nil
			}
			out[i] = priced
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// ToOffers wraps products as unpriced offers.
func ToOffers(products []models.Product) []models.PricedOffer {
	offers := make([]models.PricedOffer, len(products))
	for i, p := range products {
		offers[i] = models.PricedOffer{Product: p}
	}
	return offers
}

// carryPrices copies known prices onto fresh offers by product id so a
// server collection can be adopted without repeating lookups.
func carryPrices(known, fresh []models.PricedOffer) []models.PricedOffer {
	byID := make(map[string]models.PricedOffer, len(known))
	for _, o := range known {
		if o.Priced {
			byID[o.ID] = o
		}
	}

	out := make([]models.PricedOffer, len(fresh))
	for i, o := range fresh {
		if prev, ok := byID[o.ID]; ok && !o.Priced {
			o.DisplayPrice = prev.DisplayPrice
			o.OriginalPrice = prev.OriginalPrice
			o.Discount = prev.Discount
			o.Priced = true
		}
		out[i] = o
	}
	return out
}
