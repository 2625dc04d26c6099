// internal/services/fake_api_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abinexis/homepage-admin/internal/models"
)

var errBackendDown = errors.New("backend down")

// fakeAPI is an in-memory homepage backend. Collection updates change its
// document the way the real backend does unless an error is configured.
type fakeAPI struct {
	mu sync.Mutex

	doc      models.HomepageDocument
	products []models.Product
	prices   map[string]models.PriceDetails

	homepageErr error
	priceErr    map[string]error
	featuredErr error
	offersErr   error
	bannerErr   error

	// bannerResponse overrides the banner returned by UpdateBanner.
	bannerResponse *models.Banner
	// gate blocks collection updates until closed.
	gate chan struct{}

	homepageCalls int
	priceCalls    map[string]int
	filters       map[string]map[string]string
	updates       []models.CollectionUpdateRequest
	bannerForms   []models.BannerForm
	tokens        []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		prices:     map[string]models.PriceDetails{},
		priceErr:   map[string]error{},
		priceCalls: map[string]int{},
		filters:    map[string]map[string]string{},
	}
}

func (f *fakeAPI) GetHomepage(ctx context.Context) (*models.HomepageDocument, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.homepageCalls++
	if f.homepageErr != nil {
		return nil, f.homepageErr
	}
	doc := models.HomepageDocument{
		FeaturedProducts: append([]models.Product(nil), f.doc.FeaturedProducts...),
		TodayOffers:      append([]models.Product(nil), f.doc.TodayOffers...),
		Banners:          append([]models.Banner(nil), f.doc.Banners...),
	}
	return &doc, nil
}

func (f *fakeAPI) GetProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Product{}, f.products...), nil
}

func (f *fakeAPI) GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*models.PriceDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priceCalls[productID]++
	f.filters[productID] = selectedFilters
	if err := f.priceErr[productID]; err != nil {
		return nil, err
	}
	details, ok := f.prices[productID]
	if !ok {
		return nil, &NetworkError{Op: "GET /products/:id/price-details", StatusCode: 404, Message: "Product not found"}
	}
	return &details, nil
}

func (f *fakeAPI) UpdateFeatured(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.updates = append(f.updates, models.CollectionUpdateRequest{ProductID: productID, Action: action})
	if f.featuredErr != nil {
		return nil, f.featuredErr
	}
	f.doc.FeaturedProducts = f.applyLocked(f.doc.FeaturedProducts, productID, action)
	return append([]models.Product{}, f.doc.FeaturedProducts...), nil
}

func (f *fakeAPI) UpdateOffers(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error) {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.updates = append(f.updates, models.CollectionUpdateRequest{ProductID: productID, Action: action})
	if f.offersErr != nil {
		return nil, f.offersErr
	}
	f.doc.TodayOffers = f.applyLocked(f.doc.TodayOffers, productID, action)
	return append([]models.Product{}, f.doc.TodayOffers...), nil
}

func (f *fakeAPI) applyLocked(items []models.Product, productID string, action models.CollectionAction) []models.Product {
	switch action {
	case models.ActionAdd:
		for _, p := range f.products {
			if p.ID == productID && !containsProduct(items, productID) {
				return append(items, p)
			}
		}
		return items
	default:
		out := []models.Product{}
		for _, p := range items {
			if p.ID != productID {
				out = append(out, p)
			}
		}
		return out
	}
}

func (f *fakeAPI) CreateBanner(ctx context.Context, token string, form models.BannerForm) (*models.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.bannerForms = append(f.bannerForms, form)
	if f.bannerErr != nil {
		return nil, f.bannerErr
	}
	banner := models.Banner{
		ID:            fmt.Sprintf("b%d", len(f.doc.Banners)+1),
		Title:         form.Title,
		Description:   form.Description,
		Image:         form.ImageURL,
		SearchProduct: form.SearchProduct,
	}
	f.doc.Banners = append(f.doc.Banners, banner)
	return &banner, nil
}

func (f *fakeAPI) UpdateBanner(ctx context.Context, token, bannerID string, form models.BannerForm) (*models.Banner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	f.bannerForms = append(f.bannerForms, form)
	if f.bannerErr != nil {
		return nil, f.bannerErr
	}
	for i, b := range f.doc.Banners {
		if b.ID != bannerID {
			continue
		}
		b.Title = form.Title
		b.Description = form.Description
		if form.ImageURL != "" {
			b.Image = form.ImageURL
		}
		b.SearchProduct = form.SearchProduct
		f.doc.Banners[i] = b
		if f.bannerResponse != nil {
			resp := *f.bannerResponse
			return &resp, nil
		}
		return &b, nil
	}
	return nil, &NetworkError{Op: "PUT /homepage/banners/:id", StatusCode: 404, Message: "Banner not found"}
}

func (f *fakeAPI) DeleteBanner(ctx context.Context, token, bannerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if f.bannerErr != nil {
		return f.bannerErr
	}
	out := []models.Banner{}
	for _, b := range f.doc.Banners {
		if b.ID != bannerID {
			out = append(out, b)
		}
	}
	f.doc.Banners = out
	return nil
}

func (f *fakeAPI) wait() {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeAPI) priceCallCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.priceCalls[id]
}

func (f *fakeAPI) lastBannerForm() models.BannerForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bannerForms[len(f.bannerForms)-1]
}

func price(v float64) *float64 {
	return &v
}

func catalogFixture() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Shoe", Category: "Footwear", Brand: "Acme"},
		{ID: "2", Name: "Running Sock", Category: "Apparel", Brand: "Stride", Price: price(12)},
		{ID: "3", Name: "Trail Boot", Category: "Footwear", Brand: "Northwind",
			Filters: []models.ProductFilter{{Name: "size", Values: []string{"42", "43"}}, {Name: "color"}}},
		{ID: "4", Name: "Water Bottle", Category: "Outdoor", Brand: "Acme"},
		{ID: "5", Name: "Headlamp", Category: "Outdoor", Brand: "Lumen"},
	}
}
