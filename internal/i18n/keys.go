// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyLoadFailed     = "load.failed"
	KeyDataRefreshed  = "data.refreshed"
	KeyInternalError  = "error.internal"
	KeyEditorBusy     = "editor.busy"
	KeyEditorNotReady = "editor.not_ready"
	KeyRateLimited    = "rate.limited"

	// Authentication
	KeyAuthRequired         = "auth.required"
	KeyAuthInvalidToken     = "auth.invalid_token"
	KeyAuthConsoleForbidden = "auth.console_forbidden"

	// Featured products
	KeyFeaturedLoginRequired = "featured.login_required"
	KeyFeaturedAdded         = "featured.added"
	KeyFeaturedRemoved       = "featured.removed"
	KeyFeaturedAddFailed     = "featured.add_failed"
	KeyFeaturedRemoveFailed  = "featured.remove_failed"

	// Today's offers
	KeyOffersLoginRequired = "offers.login_required"
	KeyOffersAdded         = "offers.added"
	KeyOffersRemoved       = "offers.removed"
	KeyOffersAddFailed     = "offers.add_failed"
	KeyOffersRemoveFailed  = "offers.remove_failed"

	// Banners
	KeyBannerTitleRequired       = "banner.title_required"
	KeyBannerImageTooLarge       = "banner.image_too_large"
	KeyBannerCreated             = "banner.created"
	KeyBannerUpdated             = "banner.updated"
	KeyBannerDeleted             = "banner.deleted"
	KeyBannerCreateFailed        = "banner.create_failed"
	KeyBannerUpdateFailed        = "banner.update_failed"
	KeyBannerDeleteFailed        = "banner.delete_failed"
	KeyBannerDeleteConfirm       = "banner.delete_confirm"
	KeyBannerNotFound            = "banner.not_found"
	KeyBannerProductAdded        = "banner.product_added"
	KeyBannerProductRemoved      = "banner.product_removed"
	KeyBannerProductUpdateFailed = "banner.product_update_failed"
	KeyBannerImageSourceInvalid  = "banner.image_source_invalid"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Search
	KeySearchNoResults = "search.no_results"
	KeyProductNotFound = "product.not_found"

	// Sessions
	KeySessionSaved       = "session.saved"
	KeySessionRevoked     = "session.revoked"
	KeySessionUnavailable = "session.unavailable"
)
