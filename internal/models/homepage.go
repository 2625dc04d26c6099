// internal/models/homepage.go
package models

// HomepageDocument is the singleton aggregate served by GET /homepage.
type HomepageDocument struct {
	FeaturedProducts []Product `json:"featuredProducts"`
	TodayOffers      []Product `json:"todayOffers"`
	Banners          []Banner  `json:"banners"`
}

type CollectionUpdateRequest struct {
	ProductID string           `json:"productId"`
	Action    CollectionAction `json:"action"`
}

type FeaturedResponse struct {
	FeaturedProducts []Product `json:"featuredProducts"`
}

type OffersResponse struct {
	TodayOffers []Product `json:"todayOffers"`
}
