// internal/services/catalog.go
package services

import (
	"sync"

	"github.com/abinexis/homepage-admin/internal/models"
)

// CatalogCache holds the product catalog fetched by the newest load.
// Every fetch takes a generation from Begin; snapshots from fetches that
// started before the installed one are dropped.
type CatalogCache struct {
	mu       sync.RWMutex
	products []models.Product
	loaded   bool
	issued   uint64
	applied  uint64
}

func NewCatalogCache() *CatalogCache {
	return &CatalogCache{}
}

// Begin stamps a catalog fetch that is about to start.
func (c *CatalogCache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.issued++
	return c.issued
}

// Replace swaps the whole catalog snapshot fetched under generation gen.
// It reports false when a fetch started later has already been installed.
func (c *CatalogCache) Replace(gen uint64, products []models.Product) bool {
	snapshot := make([]models.Product, len(products))
	copy(snapshot, products)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.applied {
		return false
	}
	c.products = snapshot
	c.loaded = true
	c.applied = gen
	return true
}

func (c *CatalogCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

func (c *CatalogCache) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]models.Product, len(c.products))
	copy(products, c.products)
	return products
}

func (c *CatalogCache) Find(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (c *CatalogCache) Search(query string) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return SearchProducts(query, c.products)
}
