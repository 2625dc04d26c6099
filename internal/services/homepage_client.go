// internal/services/homepage_client.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/abinexis/homepage-admin/internal/metrics"
	"github.com/abinexis/homepage-admin/internal/models"
)

var codec = jsoniter.ConfigCompatibleWithStandardLibrary

// HomepageAPI is the remote backend consumed by the editors.
type HomepageAPI interface {
	GetHomepage(ctx context.Context) (*models.HomepageDocument, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*models.PriceDetails, error)
	UpdateFeatured(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error)
	UpdateOffers(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error)
	CreateBanner(ctx context.Context, token string, form models.BannerForm) (*models.Banner, error)
	UpdateBanner(ctx context.Context, token, bannerID string, form models.BannerForm) (*models.Banner, error)
	DeleteBanner(ctx context.Context, token, bannerID string) error
}

var _ HomepageAPI = (*HTTPHomepageClient)(nil)

type HTTPHomepageClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

type ClientOption func(*HTTPHomepageClient)

func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPHomepageClient) {
		c.client = client
	}
}

// WithRateLimit bounds outgoing requests per second. A zero limit disables it.
func WithRateLimit(limit float64, burst int) ClientOption {
	return func(c *HTTPHomepageClient) {
		if limit <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(limit), burst)
	}
}

func NewHTTPHomepageClient(baseURL string, timeout time.Duration, opts ...ClientOption) *HTTPHomepageClient {
	c := &HTTPHomepageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "homepage_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiRequest describes one backend call. route is the templated path used
// for metrics labels; path is the concrete one.
type apiRequest struct {
	method      string
	route       string
	path        string
	query       url.Values
	token       string
	body        io.Reader
	contentType string
}

// GET /homepage
func (c *HTTPHomepageClient) GetHomepage(ctx context.Context) (*models.HomepageDocument, error) {
	var doc models.HomepageDocument
	err := c.do(ctx, apiRequest{method: http.MethodGet, route: "/homepage", path: "/homepage"}, &doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GET /products
func (c *HTTPHomepageClient) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, apiRequest{method: http.MethodGet, route: "/products", path: "/products"}, &products)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GET /products/{id}/price-details?selectedFilters=<JSON>
func (c *HTTPHomepageClient) GetPriceDetails(ctx context.Context, productID string, selectedFilters map[string]string) (*models.PriceDetails, error) {
	if selectedFilters == nil {
		selectedFilters = map[string]string{}
	}
	encoded, err := codec.Marshal(selectedFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode selected filters: %w", err)
	}

	var details models.PriceDetails
	err = c.do(ctx, apiRequest{
		method: http.MethodGet,
		route:  "/products/:id/price-details",
		path:   "/products/" + url.PathEscape(productID) + "/price-details",
		query:  url.Values{"selectedFilters": []string{string(encoded)}},
	}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// POST /homepage/featured
func (c *HTTPHomepageClient) UpdateFeatured(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error) {
	var resp models.FeaturedResponse
	if err := c.postCollection(ctx, "/homepage/featured", token, productID, action, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.FeaturedProducts), nil
}

// POST /homepage/offers
func (c *HTTPHomepageClient) UpdateOffers(ctx context.Context, token, productID string, action models.CollectionAction) ([]models.Product, error) {
	var resp models.OffersResponse
	if err := c.postCollection(ctx, "/homepage/offers", token, productID, action, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.TodayOffers), nil
}

func (c *HTTPHomepageClient) postCollection(ctx context.Context, path, token, productID string, action models.CollectionAction, out interface{}) error {
	body, err := codec.Marshal(models.CollectionUpdateRequest{ProductID: productID, Action: action})
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(ctx, apiRequest{
		method:      http.MethodPost,
		route:       path,
		path:        path,
		token:       token,
		body:        bytes.NewReader(body),
		contentType: "application/json",
	}, out)
}

// POST /homepage/banners
func (c *HTTPHomepageClient) CreateBanner(ctx context.Context, token string, form models.BannerForm) (*models.Banner, error) {
	body, contentType, err := encodeBannerForm(form)
	if err != nil {
		return nil, err
	}

	var banner models.Banner
	err = c.do(ctx, apiRequest{
		method:      http.MethodPost,
		route:       "/homepage/banners",
		path:        "/homepage/banners",
		token:       token,
		body:        body,
		contentType: contentType,
	}, &banner)
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// PUT /homepage/banners/{id}
func (c *HTTPHomepageClient) UpdateBanner(ctx context.Context, token, bannerID string, form models.BannerForm) (*models.Banner, error) {
	body, contentType, err := encodeBannerForm(form)
	if err != nil {
		return nil, err
	}

	var banner models.Banner
	err = c.do(ctx, apiRequest{
		method:      http.MethodPut,
		route:       "/homepage/banners/:id",
		path:        "/homepage/banners/" + url.PathEscape(bannerID),
		token:       token,
		body:        body,
		contentType: contentType,
	}, &banner)
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

// DELETE /homepage/banners/{id}
func (c *HTTPHomepageClient) DeleteBanner(ctx context.Context, token, bannerID string) error {
	return c.do(ctx, apiRequest{
		method: http.MethodDelete,
		route:  "/homepage/banners/:id",
		path:   "/homepage/banners/" + url.PathEscape(bannerID),
		token:  token,
	}, nil)
}

func (c *HTTPHomepageClient) do(ctx context.Context, r apiRequest, out interface{}) error {
	op := r.method + " " + r.route
	requestID := RequestIDFromContext(ctx)
	log := c.log.WithFields(logrus.Fields{
		"method":     r.method,
		"path":       r.path,
		"request_id": requestID,
	})

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	endpoint := c.baseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, r.body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(r.method, r.route, 0, time.Since(start))
		log.WithError(err).Warn("Backend request failed")
		select {
		case <-ctx.Done():
			return &NetworkError{Op: op, Err: fmt.Errorf("request was cancelled: %w", ctx.Err())}
		default:
			return &NetworkError{Op: op, Err: err}
		}
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(r.method, r.route, resp.StatusCode, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		netErr := &NetworkError{Op: op, StatusCode: resp.StatusCode, Message: backendMessage(body)}
		log.WithFields(logrus.Fields{
			"status":  resp.StatusCode,
			"message": netErr.Message,
		}).Warn("Backend returned non-success status")
		return netErr
	}

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).Milliseconds(),
	}).Debug("Backend request completed")

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := codec.Unmarshal(body, out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	return nil
}

// backendMessage extracts {"message": "..."} from an error body, falling
// back to the raw text.
func backendMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := codec.Unmarshal(trimmed, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}

	const maxLen = 512
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return string(trimmed)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeBannerForm builds the multipart body shared by banner create and
// update. A binary image wins over imageUrl.
func encodeBannerForm(form models.BannerForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", form.Title); err != nil {
		return nil, "", fmt.Errorf("failed to write title: %w", err)
	}
	if err := w.WriteField("description", form.Description); err != nil {
		return nil, "", fmt.Errorf("failed to write description: %w", err)
	}

	switch {
	case form.Image != nil:
		filename := form.Image.Filename
		if filename == "" {
			filename = "banner"
		}
		contentType := form.Image.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(form.Image.Data)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(filename)))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(form.Image.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image: %w", err)
		}
	case form.ImageURL != "":
		if err := w.WriteField("imageUrl", form.ImageURL); err != nil {
			return nil, "", fmt.Errorf("failed to write imageUrl: %w", err)
		}
	}

	if id := form.SearchProductID(); id != "" {
		if err := w.WriteField("searchProduct", id); err != nil {
			return nil, "", fmt.Errorf("failed to write searchProduct: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
