// internal/services/console_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/utils"
)

func consoleFixture() (*Console, *fakeAPI) {
	api := newFakeAPI()
	api.products = catalogFixture()
	api.doc = models.HomepageDocument{
		FeaturedProducts: []models.Product{api.products[0]},
		TodayOffers:      []models.Product{api.products[1]},
		Banners:          []models.Banner{{ID: "b1", Title: "Sale"}},
	}
	api.prices["2"] = models.PriceDetails{EffectivePrice: 9, NormalPrice: 12}

	console := NewConsole(Dependencies{API: api, Tokens: StaticToken("tok"), Auditor: NewAuditService(nil)}, ConsoleOptions{})
	return console, api
}

func TestConsoleRefreshAll(t *testing.T) {
	console, _ := consoleFixture()

	require.NoError(t, console.RefreshAll(context.Background(), false))

	assert.Equal(t, StatusReady, console.Featured.Status())
	assert.Equal(t, StatusReady, console.Offers.Status())
	assert.Equal(t, StatusReady, console.Banners.Status())
	assert.Equal(t, 25, console.Offers.Items()[0].Discount)
	assert.True(t, console.Catalog.Loaded())
}

func TestConsoleSilentRefreshNeverFails(t *testing.T) {
	console, api := consoleFixture()
	require.NoError(t, console.RefreshAll(context.Background(), false))
	api.set(func(f *fakeAPI) { f.homepageErr = errBackendDown })

	assert.NoError(t, console.RefreshAll(context.Background(), true))
	assert.Equal(t, StatusReady, console.Banners.Status())

	assert.Error(t, console.RefreshAll(context.Background(), false))
	assert.Equal(t, StatusFailed, console.Banners.Status())
}

func TestConsoleEnsureLoaded(t *testing.T) {
	console, api := consoleFixture()

	require.NoError(t, console.EnsureLoaded(context.Background()))
	calls := api.homepageCalls

	require.NoError(t, console.EnsureLoaded(context.Background()))
	assert.Equal(t, calls, api.homepageCalls)
}

func TestConsoleEnsureLoadedNamedCollection(t *testing.T) {
	console, _ := consoleFixture()

	require.NoError(t, console.EnsureLoaded(context.Background(), models.CollectionOffers))

	assert.Equal(t, StatusReady, console.Offers.Status())
	assert.Equal(t, StatusIdle, console.Featured.Status())
	assert.Equal(t, StatusIdle, console.Banners.Status())
}

func TestConsoleResolveProduct(t *testing.T) {
	console, _ := consoleFixture()

	product, err := console.ResolveProduct(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Trail Boot", product.Name)

	_, err = console.ResolveProduct(context.Background(), "404")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestConsoleSearchCatalogLoadsOnDemand(t *testing.T) {
	console, _ := consoleFixture()

	results, err := console.SearchCatalog(context.Background(), "foot")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(results))
}

func TestAuditServiceWithoutDatabase(t *testing.T) {
	audit := NewAuditService(nil)

	assert.NotPanics(t, func() {
		audit.Record(context.Background(), AuditEntry{
			Collection: models.CollectionFeatured,
			Action:     "add",
			Outcome:    models.OutcomeRolledBack,
			Err:        &NetworkError{StatusCode: 500},
		})
	})

	logs, total, err := audit.List(context.Background(), utils.NormalizePagination(utils.PaginationParams{}))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
}
