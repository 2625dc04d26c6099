// internal/handlers/catalog.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/models"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

type CatalogHandler struct {
	console *services.Console
}

func NewCatalogHandler(console *services.Console) *CatalogHandler {
	return &CatalogHandler{console: console}
}

// GET /v1/catalog/search?q=
func (h *CatalogHandler) Search(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	results, err := h.console.SearchCatalog(c.Request.Context(), c.Query("q"))
	if err != nil {
		_ = c.Error(err)
		utils.BadGatewayResponse(c, i18n.T(lang, i18n.KeyLoadFailed), nil)
		return
	}

	if c.Query("format") == "csv" {
		data, err := gocsv.MarshalBytes(models.ToProductRows(results))
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		c.Header("Content-Disposition", `attachment; filename="products.csv"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
		return
	}

	data := gin.H{"products": results}
	if len(results) == 0 && c.Query("q") != "" {
		data["message"] = i18n.T(lang, i18n.KeySearchNoResults)
	}
	utils.SuccessResponse(c, data)
}

// POST /v1/refresh
func (h *CatalogHandler) Refresh(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.console.RefreshAll(c.Request.Context(), false); err != nil {
		_ = c.Error(err)
		message := i18n.T(lang, i18n.KeyLoadFailed)
		h.console.Notices.Error(message)
		utils.BadGatewayResponse(c, message, nil)
		return
	}

	message := i18n.T(lang, i18n.KeyDataRefreshed)
	h.console.Notices.Success(message)
	utils.SuccessResponse(c, gin.H{"message": message})
}
