// internal/handlers/session.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

// SessionHandler stores the backend admin token for the console.
type SessionHandler struct {
	sessions *services.SessionStore
	notices  *services.Notices
}

func NewSessionHandler(sessions *services.SessionStore, notices *services.Notices) *SessionHandler {
	return &SessionHandler{sessions: sessions, notices: notices}
}

type saveSessionRequest struct {
	Token string `json:"token" validate:"notblank"`
}

// GET /v1/session
func (h *SessionHandler) GetSession(c *gin.Context) {
	if !h.available(c) {
		return
	}

	session, err := h.sessions.Current(c.Request.Context())
	if errors.Is(err, services.ErrUnauthenticated) {
		utils.SuccessResponse(c, gin.H{"session": nil})
		return
	}
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"session": session})
}

// POST /v1/session
func (h *SessionHandler) SaveSession(c *gin.Context) {
	if !h.available(c) {
		return
	}
	lang := utils.GetLangFromContext(c)

	var req saveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	session, err := h.sessions.Save(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.notices, err, messageKeys{})
		return
	}

	message := i18n.T(lang, i18n.KeySessionSaved)
	h.notices.Success(message)
	utils.CreatedResponse(c, gin.H{"message": message, "session": session})
}

// DELETE /v1/session
func (h *SessionHandler) RevokeSession(c *gin.Context) {
	if !h.available(c) {
		return
	}
	lang := utils.GetLangFromContext(c)

	if err := h.sessions.Revoke(c.Request.Context()); err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, i18n.KeySessionRevoked)
	h.notices.Success(message)
	utils.SuccessResponse(c, gin.H{"message": message})
}

func (h *SessionHandler) available(c *gin.Context) bool {
	if h.sessions != nil {
		return true
	}
	utils.NotFoundResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeySessionUnavailable))
	return false
}
