// internal/handlers/notice.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

type NoticeHandler struct {
	notices *services.Notices
}

func NewNoticeHandler(notices *services.Notices) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// GET /v1/notices
func (h *NoticeHandler) GetNotice(c *gin.Context) {
	notice, ok := h.notices.Current()
	if !ok {
		utils.SuccessResponse(c, gin.H{"notice": nil})
		return
	}
	utils.SuccessResponse(c, gin.H{"notice": notice})
}

// DELETE /v1/notices
func (h *NoticeHandler) Dismiss(c *gin.Context) {
	h.notices.Dismiss()
	utils.SuccessResponse(c, gin.H{"notice": nil})
}
