// internal/models/banner.go
package models

import (
	"bytes"
	"encoding/json"
)

// MaxBannerImageSize caps uploaded banner images at 5MB.
const MaxBannerImageSize = 5 * 1024 * 1024

type Banner struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Image         string   `json:"image,omitempty"`
	SearchProduct *Product `json:"searchProduct"`
}

// UnmarshalJSON accepts searchProduct either populated or as a bare id.
func (b *Banner) UnmarshalJSON(data []byte) error {
	type banner Banner
	var raw struct {
		banner
		SearchProduct json.RawMessage `json:"searchProduct"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = Banner(raw.banner)
	b.SearchProduct = nil

	ref := bytes.TrimSpace(raw.SearchProduct)
	if len(ref) == 0 || bytes.Equal(ref, []byte("null")) {
		return nil
	}

	var id string
	if err := json.Unmarshal(ref, &id); err == nil {
		if id != "" {
			b.SearchProduct = &Product{ID: id}
		}
		return nil
	}

	var product Product
	if err := json.Unmarshal(ref, &product); err != nil {
		return err
	}
	b.SearchProduct = &product
	return nil
}

type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// BannerForm is the write model for banner create and update calls.
// Image and ImageURL are mutually exclusive on the wire; Image wins.
type BannerForm struct {
	Title         string       `json:"title" validate:"notblank"`
	Description   string       `json:"description"`
	Image         *ImageUpload `json:"-"`
	ImageURL      string       `json:"imageUrl,omitempty" validate:"omitempty,url"`
	SearchProduct *Product     `json:"searchProduct,omitempty"`
}

func (f BannerForm) SearchProductID() string {
	if f.SearchProduct == nil {
		return ""
	}
	return f.SearchProduct.ID
}
