// internal/services/search.go
package services

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/abinexis/homepage-admin/internal/models"
)

// SearchProducts returns the catalog entries whose name, category or brand
// contains query, ignoring case. A blank query yields no results, not the
// whole catalog. Results keep catalog order.
func SearchProducts(query string, catalog []models.Product) []models.Product {
	results := []models.Product{}
	if strings.TrimSpace(query) == "" {
		return results
	}

	fold := cases.Fold()
	needle := fold.String(query)
	for _, p := range catalog {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(fold.String(p.Category), needle) ||
			strings.Contains(fold.String(p.Brand), needle) {
			results = append(results, p)
		}
	}
	return results
}
