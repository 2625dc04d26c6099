// internal/handlers/banner.go
package handlers

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

type BannerHandler struct {
	console *services.Console
}

func NewBannerHandler(console *services.Console) *BannerHandler {
	return &BannerHandler{console: console}
}

var (
	bannerCreateKeys = messageKeys{Success: i18n.KeyBannerCreated, Failed: i18n.KeyBannerCreateFailed}
	bannerUpdateKeys = messageKeys{Success: i18n.KeyBannerUpdated, Failed: i18n.KeyBannerUpdateFailed}
	bannerDeleteKeys = messageKeys{Success: i18n.KeyBannerDeleted, Failed: i18n.KeyBannerDeleteFailed}
	bannerProductKey = messageKeys{Failed: i18n.KeyBannerProductUpdateFailed, FailedDetail: true}
)

// GET /v1/banners
func (h *BannerHandler) GetBanners(c *gin.Context) {
	banners := h.console.Banners
	if c.Query("refresh") == "true" || banners.Status() == services.StatusIdle {
		if err := banners.Load(c.Request.Context()); err != nil {
			lang := utils.GetLangFromContext(c)
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyLoadFailed), banners.Snapshot())
			return
		}
	}

	utils.SuccessResponse(c, banners.Snapshot())
}

// POST /v1/banners
func (h *BannerHandler) CreateBanner(c *gin.Context) {
	if !h.ensureLoaded(c, bannerCreateKeys) {
		return
	}

	form, err := h.bindForm(c)
	if err != nil {
		respondError(c, h.console.Notices, err, bannerCreateKeys)
		return
	}

	if err := h.console.Banners.CreateBanner(c.Request.Context(), form); err != nil {
		respondError(c, h.console.Notices, err, bannerCreateKeys)
		return
	}

	h.succeed(c, bannerCreateKeys.Success, true)
}

// PUT /v1/banners/:id
func (h *BannerHandler) UpdateBanner(c *gin.Context) {
	if !h.ensureLoaded(c, bannerUpdateKeys) {
		return
	}

	form, err := h.bindForm(c)
	if err != nil {
		respondError(c, h.console.Notices, err, bannerUpdateKeys)
		return
	}

	if err := h.console.Banners.UpdateBanner(c.Request.Context(), c.Param("id"), form); err != nil {
		respondError(c, h.console.Notices, err, bannerUpdateKeys)
		return
	}

	h.succeed(c, bannerUpdateKeys.Success, false)
}

// DELETE /v1/banners/:id?confirm=true
func (h *BannerHandler) DeleteBanner(c *gin.Context) {
	if !h.ensureLoaded(c, bannerDeleteKeys) {
		return
	}

	confirmed := c.Query("confirm") == "true"
	confirm := func(models.Banner) bool { return confirmed }

	if err := h.console.Banners.DeleteBanner(c.Request.Context(), c.Param("id"), confirm); err != nil {
		respondError(c, h.console.Notices, err, bannerDeleteKeys)
		return
	}

	h.succeed(c, bannerDeleteKeys.Success, false)
}

type bannerProductRequest struct {
	ProductID *string `json:"productId"`
}

// PUT /v1/banners/:id/product
func (h *BannerHandler) UpdateBannerProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req bannerProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if !h.ensureLoaded(c, bannerProductKey) {
		return
	}

	var product *models.Product
	successKey := i18n.KeyBannerProductRemoved
	if req.ProductID != nil && strings.TrimSpace(*req.ProductID) != "" {
		resolved, err := h.console.ResolveProduct(c.Request.Context(), *req.ProductID)
		if err != nil {
			respondError(c, h.console.Notices, err, bannerProductKey)
			return
		}
		product = &resolved
		successKey = i18n.KeyBannerProductAdded
	}

	if err := h.console.Banners.UpdateBannerProduct(c.Request.Context(), c.Param("id"), product); err != nil {
		respondError(c, h.console.Notices, err, bannerProductKey)
		return
	}

	h.succeed(c, successKey, false)
}

// ensureLoaded loads the banners on first use so that a change does not
// fail with ErrNotReady.
func (h *BannerHandler) ensureLoaded(c *gin.Context, keys messageKeys) bool {
	if err := h.console.EnsureLoaded(c.Request.Context(), models.CollectionBanners); err != nil {
		respondError(c, h.console.Notices, err, keys)
		return false
	}
	return true
}

func (h *BannerHandler) succeed(c *gin.Context, key string, created bool) {
	message := i18n.T(utils.GetLangFromContext(c), key)
	h.console.Notices.Success(message)

	data := gin.H{
		"message": message,
		"banners": h.console.Banners.Snapshot(),
	}
	if created {
		utils.CreatedResponse(c, data)
		return
	}
	utils.SuccessResponse(c, data)
}

// bindForm reads the multipart banner form. The image is either an
// uploaded file or an imageSource (URL, data: URL or s3:// URI).
func (h *BannerHandler) bindForm(c *gin.Context) (models.BannerForm, error) {
	ctx := c.Request.Context()
	form := models.BannerForm{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}

	if fh, err := c.FormFile("image"); err == nil {
		file, err := fh.Open()
		if err != nil {
			return form, fmt.Errorf("failed to open uploaded image: %w", err)
		}
		defer file.Close()

		// one byte over the limit is enough to reject it
		data, err := io.ReadAll(io.LimitReader(file, models.MaxBannerImageSize+1))
		if err != nil {
			return form, fmt.Errorf("failed to read uploaded image: %w", err)
		}
		form.Image = &models.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		}
	} else if err := h.console.Images.Resolve(ctx, c.PostForm("imageSource"), &form); err != nil {
		return form, err
	}

	if id := strings.TrimSpace(c.PostForm("searchProduct")); id != "" {
		product, err := h.console.ResolveProduct(ctx, id)
		if err != nil {
			return form, err
		}
		form.SearchProduct = &product
	}

	return form, nil
}
