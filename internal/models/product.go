// internal/models/product.go
package models

import "strconv"

type ProductFilter struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type Product struct {
	ID       string          `json:"_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
	Images   []string        `json:"images"`
	Price    *float64        `json:"price,omitempty"`
	Filters  []ProductFilter `json:"filters,omitempty"`
}

// DefaultFilterSelection picks the first allowed value of every filter.
// Filters without values are skipped.
func (p Product) DefaultFilterSelection() map[string]string {
	selection := make(map[string]string, len(p.Filters))
	for _, f := range p.Filters {
		if len(f.Values) > 0 {
			selection[f.Name] = f.Values[0]
		}
	}
	return selection
}

type PriceDetails struct {
	EffectivePrice float64 `json:"effectivePrice"`
	NormalPrice    float64 `json:"normalPrice"`
}

// PricedOffer is a product decorated with the prices shown on the
// today's offers screen.
type PricedOffer struct {
	Product
	DisplayPrice  float64 `json:"displayPrice"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      int     `json:"discount"`

	// Priced marks the decoration as done; decorators skip priced offers.
	Priced bool `json:"-"`
}

func (o PricedOffer) Key() string {
	return o.ID
}

// ProductRow is the flat CSV form of a product.
type ProductRow struct {
	ID       string `csv:"id"`
	Name     string `csv:"name"`
	Category string `csv:"category"`
	Brand    string `csv:"brand"`
	Price    string `csv:"price"`
}

func ToProductRows(products []Product) []ProductRow {
	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{ID: p.ID, Name: p.Name, Category: p.Category, Brand: p.Brand}
		if p.Price != nil {
			rows[i].Price = strconv.FormatFloat(*p.Price, 'f', -1, 64)
		}
	}
	return rows
}
