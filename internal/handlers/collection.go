// internal/handlers/collection.go
package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

type collectionEditor[T any] interface {
	Name() models.Collection
	Load(ctx context.Context) error
	Snapshot() services.Snapshot[T]
	Status() services.Status
	AddItem(ctx context.Context, product models.Product) error
	RemoveItem(ctx context.Context, productID string) error
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"notblank"`
}

// CollectionHandler serves one product collection of the homepage.
type CollectionHandler[T any] struct {
	console *services.Console
	editor  collectionEditor[T]
	added   messageKeys
	removed messageKeys
}

func NewFeaturedHandler(console *services.Console) *CollectionHandler[models.Product] {
	return &CollectionHandler[models.Product]{
		console: console,
		editor:  console.Featured,
		added: messageKeys{
			Success:       i18n.KeyFeaturedAdded,
			LoginRequired: i18n.KeyFeaturedLoginRequired,
			Failed:        i18n.KeyFeaturedAddFailed,
			FailedDetail:  true,
		},
		removed: messageKeys{
			Success:       i18n.KeyFeaturedRemoved,
			LoginRequired: i18n.KeyFeaturedLoginRequired,
			Failed:        i18n.KeyFeaturedRemoveFailed,
			FailedDetail:  true,
		},
	}
}

func NewOffersHandler(console *services.Console) *CollectionHandler[models.PricedOffer] {
	return &CollectionHandler[models.PricedOffer]{
		console: console,
		editor:  console.Offers,
		added: messageKeys{
			Success:       i18n.KeyOffersAdded,
			LoginRequired: i18n.KeyOffersLoginRequired,
			Failed:        i18n.KeyOffersAddFailed,
			FailedDetail:  true,
		},
		removed: messageKeys{
			Success:       i18n.KeyOffersRemoved,
			LoginRequired: i18n.KeyOffersLoginRequired,
			Failed:        i18n.KeyOffersRemoveFailed,
			FailedDetail:  true,
		},
	}
}

// GET /v1/featured, GET /v1/offers
func (h *CollectionHandler[T]) List(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.Query("refresh"))
	if refresh || h.editor.Status() == services.StatusIdle {
		if err := h.editor.Load(c.Request.Context()); err != nil {
			lang := utils.GetLangFromContext(c)
			utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyLoadFailed), h.editor.Snapshot())
			return
		}
	}

	utils.SuccessResponse(c, h.editor.Snapshot())
}

// POST /v1/featured, POST /v1/offers
func (h *CollectionHandler[T]) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.console.EnsureLoaded(c.Request.Context(), h.editor.Name()); err != nil {
		respondError(c, h.console.Notices, err, h.added)
		return
	}

	product, err := h.console.ResolveProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, h.console.Notices, err, h.added)
		return
	}

	if err := h.editor.AddItem(c.Request.Context(), product); err != nil {
		respondError(c, h.console.Notices, err, h.added)
		return
	}

	message := i18n.T(lang, h.added.Success)
	h.console.Notices.Success(message)
	utils.SuccessResponse(c, gin.H{
		"message":    message,
		"collection": h.editor.Snapshot(),
	})
}

// DELETE /v1/featured/:productId, DELETE /v1/offers/:productId
func (h *CollectionHandler[T]) Remove(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.console.EnsureLoaded(c.Request.Context(), h.editor.Name()); err != nil {
		respondError(c, h.console.Notices, err, h.removed)
		return
	}

	if err := h.editor.RemoveItem(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, h.console.Notices, err, h.removed)
		return
	}

	message := i18n.T(lang, h.removed.Success)
	h.console.Notices.Success(message)
	utils.SuccessResponse(c, gin.H{
		"message":    message,
		"collection": h.editor.Snapshot(),
	})
}
