// internal/handlers/audit.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GET /v1/audit
func (h *AuditHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.auditService.List(c.Request.Context(), params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}
