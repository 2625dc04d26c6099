// internal/services/console.go
package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abinexis/homepage-admin/internal/models"
)

type Dependencies struct {
	API      HomepageAPI
	Tokens   TokenProvider
	Auditor  Auditor
	Images   *ImageResolver
	Sessions *SessionStore
}

type ConsoleOptions struct {
	PricingConcurrency int
	BannerResyncDelay  time.Duration
	NoticeTTL          time.Duration
}

// Console wires the three homepage editors around one shared catalog.
type Console struct {
	Catalog  *CatalogCache
	Featured *FeaturedEditor
	Offers   *OffersEditor
	Banners  *BannerEditor
	Notices  *Notices
	Images   *ImageResolver
	Sessions *SessionStore
}

func NewConsole(deps Dependencies, opts ConsoleOptions) *Console {
	catalog := NewCatalogCache()
	editorDeps := EditorDeps{
		API:     deps.API,
		Catalog: catalog,
		Tokens:  deps.Tokens,
		Auditor: deps.Auditor,
	}

	images := deps.Images
	if images == nil {
		images = &ImageResolver{}
	}

	return &Console{
		Catalog:  catalog,
		Featured: NewFeaturedEditor(editorDeps),
		Offers:   NewOffersEditor(editorDeps, NewPricingDecorator(deps.API, opts.PricingConcurrency)),
		Banners:  NewBannerEditor(editorDeps, opts.BannerResyncDelay),
		Notices:  NewNotices(opts.NoticeTTL),
		Images:   images,
		Sessions: deps.Sessions,
	}
}

type loader interface {
	Name() models.Collection
	Load(ctx context.Context) error
	LoadSilent(ctx context.Context)
	Status() Status
}

func (c *Console) editors() []loader {
	return []loader{c.Featured, c.Offers, c.Banners}
}

// RefreshAll reloads every collection concurrently. A silent refresh
// never fails and keeps whatever could not be fetched.
func (c *Console) RefreshAll(ctx context.Context, silent bool) error {
	// one failing collection must not cancel the others
	var g errgroup.Group
	for _, e := range c.editors() {
		e := e
		g.Go(func() error {
			if silent {
				e.LoadSilent(ctx)
				return nil
			}
			return e.Load(ctx)
		})
	}
	return g.Wait()
}

// EnsureLoaded loads the named collections, or all of them, unless they
// are ready or already loading.
func (c *Console) EnsureLoaded(ctx context.Context, names ...models.Collection) error {
	var errs []error
	for _, e := range c.editors() {
		if len(names) > 0 && !slices.Contains(names, e.Name()) {
			continue
		}
		if s := e.Status(); s == StatusReady || s == StatusLoading {
			continue
		}
		if err := e.Load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ResolveProduct finds a catalog product by id, loading the catalog first
// if needed.
func (c *Console) ResolveProduct(ctx context.Context, productID string) (models.Product, error) {
	if !c.Catalog.Loaded() {
		if err := c.Featured.Load(ctx); err != nil {
			return models.Product{}, err
		}
	}
	product, ok := c.Catalog.Find(productID)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

// SearchCatalog searches the cached catalog, loading it on first use.
func (c *Console) SearchCatalog(ctx context.Context, query string) ([]models.Product, error) {
	if !c.Catalog.Loaded() {
		if err := c.Featured.Load(ctx); err != nil {
			return nil, err
		}
	}
	return c.Catalog.Search(query), nil
}
