// internal/services/banners.go
package services

import (
	"context"
	"time"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/utils"
)

const DefaultBannerResyncDelay = time.Second

// ConfirmFunc asks the operator to confirm a destructive change.
type ConfirmFunc func(banner models.Banner) bool

// Confirmed is a ConfirmFunc for callers that already collected consent.
func Confirmed(models.Banner) bool { return true }

// BannerEditor edits homepage banners. Create, update and delete are
// followed by a full reload; changing the linked product is merged
// locally and re-synced shortly after.
type BannerEditor struct {
	*Editor[models.Banner]
	resyncDelay time.Duration
	afterFunc   func(time.Duration, func()) *time.Timer
}

func NewBannerEditor(deps EditorDeps, resyncDelay time.Duration) *BannerEditor {
	if resyncDelay <= 0 {
		resyncDelay = DefaultBannerResyncDelay
	}
	return &BannerEditor{
		Editor: NewEditor(CollectionSpec[models.Banner]{
			Name: models.CollectionBanners,
			Key:  func(b models.Banner) string { return b.ID },
			Extract: func(_ context.Context, doc *models.HomepageDocument, _ []models.Banner) []models.Banner {
				if doc.Banners == nil {
					return []models.Banner{}
				}
				return doc.Banners
			},
		}, deps),
		resyncDelay: resyncDelay,
		afterFunc:   time.AfterFunc,
	}
}

// ValidateBannerForm checks the form fields and the size of an uploaded
// image. The first failing field is reported.
func ValidateBannerForm(form models.BannerForm) error {
	if err := utils.ValidateStruct(form); err != nil {
		details := utils.GetValidationErrors(err)
		vErr := &ValidationError{
			Field:      "form",
			MessageKey: i18n.KeyValidationInvalid,
			Details:    details,
		}
		if len(details) > 0 {
			vErr.Field = details[0].Field
		}
		switch vErr.Field {
		case "title":
			vErr.MessageKey = i18n.KeyBannerTitleRequired
		case "imageurl":
			vErr.MessageKey = i18n.KeyBannerImageSourceInvalid
		default:
			vErr.Args = []interface{}{vErr.Field}
		}
		return vErr
	}
	if form.Image != nil && len(form.Image.Data) > models.MaxBannerImageSize {
		return &ValidationError{
			Field:      "image",
			MessageKey: i18n.KeyBannerImageTooLarge,
			Details:    len(form.Image.Data),
		}
	}
	return nil
}

func (b *BannerEditor) CreateBanner(ctx context.Context, form models.BannerForm) error {
	if err := ValidateBannerForm(form); err != nil {
		return err
	}
	return b.apply(ctx, mutation[models.Banner]{
		op:         "create",
		resourceID: form.Title,
		call: func(ctx context.Context, token string) ([]models.Banner, error) {
			_, err := b.api.CreateBanner(ctx, token, form)
			return nil, err
		},
		reload:        true,
		quietRollback: true,
	})
}

// UpdateBanner replaces a banner's content. Without a new image the
// current one is sent again.
func (b *BannerEditor) UpdateBanner(ctx context.Context, bannerID string, form models.BannerForm) error {
	if err := ValidateBannerForm(form); err != nil {
		return err
	}
	current, err := b.lookup(bannerID)
	if err != nil {
		return err
	}
	if form.Image == nil && form.ImageURL == "" {
		if err := keepImage(current, &form); err != nil {
			return err
		}
	}

	return b.apply(ctx, mutation[models.Banner]{
		op:         "update",
		resourceID: bannerID,
		call: func(ctx context.Context, token string) ([]models.Banner, error) {
			_, err := b.api.UpdateBanner(ctx, token, bannerID, form)
			return nil, err
		},
		reload:        true,
		quietRollback: true,
	})
}

// DeleteBanner removes a banner once confirm agrees. A nil confirm never
// agrees.
func (b *BannerEditor) DeleteBanner(ctx context.Context, bannerID string, confirm ConfirmFunc) error {
	current, err := b.lookup(bannerID)
	if err != nil {
		return err
	}
	if confirm == nil || !confirm(current) {
		return ErrNotConfirmed
	}

	return b.apply(ctx, mutation[models.Banner]{
		op:         "delete",
		resourceID: bannerID,
		call: func(ctx context.Context, token string) ([]models.Banner, error) {
			return nil, b.api.DeleteBanner(ctx, token, bannerID)
		},
		reload:        true,
		quietRollback: true,
	})
}

// UpdateBannerProduct links product to a banner, or unlinks it when
// product is nil. The server's answer is merged into the local banner and
// a silent reload follows after the resync delay.
func (b *BannerEditor) UpdateBannerProduct(ctx context.Context, bannerID string, product *models.Product) error {
	current, err := b.lookup(bannerID)
	if err != nil {
		return err
	}

	form := models.BannerForm{
		Title:         current.Title,
		Description:   current.Description,
		SearchProduct: product,
	}
	if err := keepImage(current, &form); err != nil {
		return err
	}

	return b.apply(ctx, mutation[models.Banner]{
		op:         "set_product",
		resourceID: bannerID,
		call: func(ctx context.Context, token string) ([]models.Banner, error) {
			updated, err := b.api.UpdateBanner(ctx, token, bannerID, form)
			if err != nil {
				return nil, err
			}
			merged := MergeBanner(current, updated, product)
			items := b.Items()
			for i := range items {
				if items[i].ID == bannerID {
					items[i] = merged
				}
			}
			return items, nil
		},
		quietRollback: true,
		done:          b.scheduleResync,
	})
}

// MergeBanner overlays the non-empty fields of the server's banner on the
// original. The id is always the original's and the product is the one
// that was selected.
func MergeBanner(original models.Banner, server *models.Banner, product *models.Product) models.Banner {
	merged := original
	if server != nil {
		if server.Title != "" {
			merged.Title = server.Title
		}
		if server.Description != "" {
			merged.Description = server.Description
		}
		if server.Image != "" {
			merged.Image = server.Image
		}
	}
	merged.ID = original.ID
	if product != nil {
		p := *product
		merged.SearchProduct = &p
	} else {
		merged.SearchProduct = nil
	}
	return merged
}

// scheduleResync reloads the banners in the background once the delay
// has passed. It cannot be cancelled.
func (b *BannerEditor) scheduleResync() {
	b.afterFunc(b.resyncDelay, func() {
		b.LoadSilent(context.Background())
	})
}

func (b *BannerEditor) lookup(bannerID string) (models.Banner, error) {
	if banner, ok := b.Find(bannerID); ok {
		return banner, nil
	}
	if b.Status() != StatusReady {
		return models.Banner{}, ErrNotReady
	}
	return models.Banner{}, ErrBannerNotFound
}

// keepImage re-sends the banner's current image. Inline data: images are
// decoded and uploaded as binary.
func keepImage(current models.Banner, form *models.BannerForm) error {
	if current.Image == "" {
		return nil
	}
	if IsDataURL(current.Image) {
		upload, err := DecodeDataURL(current.Image)
		if err != nil {
			return imageSourceError(err)
		}
		form.Image = upload
		return nil
	}
	form.ImageURL = current.Image
	return nil
}
