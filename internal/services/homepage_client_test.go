// internal/services/homepage_client_test.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/abinexis/homepage-admin/internal/models"
)

type HomepageClientTestSuite struct {
	suite.Suite
	server *httptest.Server
	client *HTTPHomepageClient

	mu       sync.Mutex
	requests []*http.Request
	bodies   []string
	forms    []map[string][]string
	files    map[string][]byte
}

func (suite *HomepageClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.requests = nil
	suite.bodies = nil
	suite.forms = nil
	suite.files = map[string][]byte{}

	router := gin.New()
	router.Use(func(c *gin.Context) {
		suite.mu.Lock()
		suite.requests = append(suite.requests, c.Request.Clone(context.Background()))
		suite.mu.Unlock()
		c.Next()
	})

	api := router.Group("/api")
	api.GET("/homepage", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"featuredProducts": []gin.H{{"_id": "1", "name": "Shoe", "category": "Footwear", "brand": "Acme"}},
			"todayOffers":      []gin.H{},
			"banners": []gin.H{
				{"_id": "b1", "title": "Sale", "searchProduct": "1"},
				{"_id": "b2", "title": "Boots", "searchProduct": gin.H{"_id": "3", "name": "Trail Boot"}},
				{"_id": "b3", "title": "Plain", "searchProduct": nil},
			},
		})
	})
	api.GET("/products", func(c *gin.Context) {
		c.String(http.StatusOK, "null")
	})
	api.GET("/products/:id/price-details", func(c *gin.Context) {
		var filters map[string]string
		if err := json.Unmarshal([]byte(c.Query("selectedFilters")), &filters); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad filters"})
			return
		}
		if c.Param("id") == "missing" {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"effectivePrice": 150, "normalPrice": 200, "echo": filters})
	})
	api.POST("/homepage/featured", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		suite.mu.Lock()
		suite.bodies = append(suite.bodies, string(body))
		suite.mu.Unlock()
		if c.GetHeader("Authorization") != "Bearer tok" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"featuredProducts": []gin.H{{"_id": "1"}, {"_id": "2"}}})
	})
	api.POST("/homepage/offers", func(c *gin.Context) {
		c.String(http.StatusBadGateway, "<html>upstream exploded</html>")
	})
	api.POST("/homepage/banners", suite.captureBanner)
	api.PUT("/homepage/banners/:id", suite.captureBanner)
	api.DELETE("/homepage/banners/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	suite.server = httptest.NewServer(router)
	suite.client = NewHTTPHomepageClient(suite.server.URL+"/api/", 5*time.Second, WithRateLimit(1000, 10))
}

func (suite *HomepageClientTestSuite) captureBanner(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(models.MaxBannerImageSize); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	suite.mu.Lock()
	suite.forms = append(suite.forms, c.Request.MultipartForm.Value)
	if fh, err := c.FormFile("image"); err == nil {
		f, _ := fh.Open()
		data, _ := io.ReadAll(f)
		f.Close()
		suite.files[fh.Filename] = data
	}
	suite.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"_id": c.DefaultQuery("id", "b9"), "title": c.PostForm("title"), "searchProduct": c.PostForm("searchProduct")})
}

func (suite *HomepageClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *HomepageClientTestSuite) TestGetHomepage() {
	doc, err := suite.client.GetHomepage(context.Background())
	suite.Require().NoError(err)

	suite.Len(doc.FeaturedProducts, 1)
	suite.Equal("Shoe", doc.FeaturedProducts[0].Name)
	suite.Require().Len(doc.Banners, 3)
	suite.Equal(&models.Product{ID: "1"}, doc.Banners[0].SearchProduct)
	suite.Equal("Trail Boot", doc.Banners[1].SearchProduct.Name)
	suite.Nil(doc.Banners[2].SearchProduct)

	req := suite.requests[0]
	suite.NotEmpty(req.Header.Get("X-Request-ID"))
	suite.Empty(req.Header.Get("Authorization"))
}

func (suite *HomepageClientTestSuite) TestGetProductsNullBody() {
	products, err := suite.client.GetProducts(context.Background())
	suite.Require().NoError(err)
	suite.NotNil(products)
	suite.Empty(products)
}

func (suite *HomepageClientTestSuite) TestGetPriceDetails() {
	details, err := suite.client.GetPriceDetails(context.Background(), "3", map[string]string{"size": "42"})
	suite.Require().NoError(err)
	suite.Equal(150.0, details.EffectivePrice)
	suite.Equal(200.0, details.NormalPrice)
	suite.Equal(`{"size":"42"}`, suite.requests[0].URL.Query().Get("selectedFilters"))

	_, err = suite.client.GetPriceDetails(context.Background(), "3", nil)
	suite.Require().NoError(err)
	suite.Equal(`{}`, suite.requests[1].URL.Query().Get("selectedFilters"))
}

func (suite *HomepageClientTestSuite) TestUpdateFeatured() {
	ctx := WithRequestID(context.Background(), "req-42")
	products, err := suite.client.UpdateFeatured(ctx, "tok", "2", models.ActionAdd)
	suite.Require().NoError(err)

	suite.Len(products, 2)
	suite.JSONEq(`{"productId":"2","action":"add"}`, suite.bodies[0])
	suite.Equal("req-42", suite.requests[0].Header.Get("X-Request-ID"))
	suite.Equal("application/json", suite.requests[0].Header.Get("Content-Type"))
}

func (suite *HomepageClientTestSuite) TestNonSuccessCarriesBackendMessage() {
	_, err := suite.client.UpdateFeatured(context.Background(), "bad", "2", models.ActionRemove)

	var netErr *NetworkError
	suite.Require().True(errors.As(err, &netErr))
	suite.Equal(http.StatusUnauthorized, netErr.StatusCode)
	suite.Equal("Not authorized, token failed", netErr.Detail())
	suite.Equal("POST /homepage/featured", netErr.Op)

	_, err = suite.client.GetPriceDetails(context.Background(), "missing", nil)
	suite.Require().True(errors.As(err, &netErr))
	suite.Equal("Product not found", netErr.Message)
}

func (suite *HomepageClientTestSuite) TestNonJSONErrorBody() {
	_, err := suite.client.UpdateOffers(context.Background(), "tok", "2", models.ActionAdd)

	var netErr *NetworkError
	suite.Require().True(errors.As(err, &netErr))
	suite.Equal(http.StatusBadGateway, netErr.StatusCode)
	suite.Equal("<html>upstream exploded</html>", netErr.Message)
}

func (suite *HomepageClientTestSuite) TestCreateBannerWithImage() {
	form := models.BannerForm{
		Title:         "Spring",
		Description:   "New season",
		Image:         &models.ImageUpload{Filename: "spring.png", ContentType: "image/png", Data: []byte("png-bytes")},
		ImageURL:      "https://ignored.example/x.png",
		SearchProduct: &models.Product{ID: "3"},
	}

	banner, err := suite.client.CreateBanner(context.Background(), "tok", form)
	suite.Require().NoError(err)
	suite.Equal("Spring", banner.Title)
	suite.Equal("3", banner.SearchProduct.ID)

	values := suite.forms[0]
	suite.Equal([]string{"Spring"}, values["title"])
	suite.Equal([]string{"New season"}, values["description"])
	suite.Equal([]string{"3"}, values["searchProduct"])
	suite.NotContains(values, "imageUrl")
	suite.Equal([]byte("png-bytes"), suite.files["spring.png"])
	suite.Equal("Bearer tok", suite.requests[0].Header.Get("Authorization"))
}

func (suite *HomepageClientTestSuite) TestUpdateBannerWithImageURL() {
	form := models.BannerForm{Title: "Spring", ImageURL: "https://cdn.example/s.png"}

	_, err := suite.client.UpdateBanner(context.Background(), "tok", "b1", form)
	suite.Require().NoError(err)

	values := suite.forms[0]
	suite.Equal([]string{"https://cdn.example/s.png"}, values["imageUrl"])
	suite.NotContains(values, "searchProduct")
	suite.Empty(suite.files)
	suite.Equal(http.MethodPut, suite.requests[0].Method)
	suite.Equal("/api/homepage/banners/b1", suite.requests[0].URL.Path)
}

func (suite *HomepageClientTestSuite) TestDeleteBanner() {
	suite.NoError(suite.client.DeleteBanner(context.Background(), "tok", "b1"))
	suite.Equal(http.MethodDelete, suite.requests[0].Method)
}

func (suite *HomepageClientTestSuite) TestTransportError() {
	suite.server.Close()

	_, err := suite.client.GetHomepage(context.Background())

	var netErr *NetworkError
	suite.Require().True(errors.As(err, &netErr))
	suite.Zero(netErr.StatusCode)
	suite.NotEmpty(netErr.Detail())
}

func TestHomepageClientTestSuite(t *testing.T) {
	suite.Run(t, new(HomepageClientTestSuite))
}

func TestBackendMessage(t *testing.T) {
	assert.Equal(t, "", backendMessage(nil))
	assert.Equal(t, "x", backendMessage([]byte(`{"message":"x"}`)))
	assert.Equal(t, "y", backendMessage([]byte(`{"error":"y"}`)))
	assert.Equal(t, "", backendMessage([]byte(`{}`)))
	assert.Equal(t, "plain", backendMessage([]byte(" plain ")))

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'a'
	}
	require.Len(t, backendMessage(long), 512)
}

func TestNetworkErrorDetail(t *testing.T) {
	assert.Equal(t, "Request failed with status code 500", (&NetworkError{StatusCode: 500}).Detail())
	assert.Equal(t, "boom", (&NetworkError{Err: errors.New("boom")}).Detail())
	assert.Equal(t, "GET /homepage: status 404: gone", (&NetworkError{Op: "GET /homepage", StatusCode: 404, Message: "gone"}).Error())
}
