// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abinexis/homepage-admin/internal/i18n"
	"github.com/abinexis/homepage-admin/internal/services"
	"github.com/abinexis/homepage-admin/internal/utils"
)

// messageKeys names the notices shown for one kind of change.
type messageKeys struct {
	Success       string
	LoginRequired string
	Failed        string
	// FailedDetail makes Failed include the backend's reason.
	FailedDetail bool
}

// respondError maps an editor error to a status code and publishes the
// matching notice.
func respondError(c *gin.Context, notices *services.Notices, err error, keys messageKeys) {
	lang := utils.GetLangFromContext(c)
	_ = c.Error(err)

	var (
		vErr   *services.ValidationError
		netErr *services.NetworkError
	)

	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		key := keys.LoginRequired
		if key == "" {
			key = i18n.KeyAuthRequired
		}
		message := i18n.T(lang, key)
		notices.Error(message)
		utils.UnauthorizedResponse(c, message)

	case errors.As(err, &vErr):
		message := i18n.T(lang, vErr.MessageKey, vErr.Args...)
		notices.Error(message)
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, vErr.Details)

	case errors.Is(err, services.ErrNotConfirmed):
		utils.ErrorResponse(c, http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED",
			i18n.T(lang, i18n.KeyBannerDeleteConfirm), nil)

	case errors.Is(err, services.ErrBusy):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyEditorBusy))

	case errors.Is(err, services.ErrNotReady):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyEditorNotReady))

	case errors.Is(err, services.ErrBannerNotFound):
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyBannerNotFound))

	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyProductNotFound))

	case errors.As(err, &netErr):
		var message string
		if keys.FailedDetail {
			message = i18n.T(lang, keys.Failed, netErr.Detail())
		} else {
			message = i18n.T(lang, keys.Failed)
		}
		notices.Error(message)
		utils.BadGatewayResponse(c, message, gin.H{
			"upstream_status": netErr.StatusCode,
		})

	default:
		logrus.WithError(err).Error("Unexpected console error")
		utils.InternalErrorResponse(c, "")
	}
}
