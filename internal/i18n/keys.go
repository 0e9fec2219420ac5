// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError     = "error.internal"
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "error.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthEmailTaken         = "auth.email_taken"
	KeyAuthUsernameTaken      = "auth.username_taken"

	// OTP
	KeyOTPEmailRequired = "otp.email_required"
	KeyOTPVerified      = "otp.verified"
	KeyOTPInvalid       = "otp.invalid"
	KeyOTPMailSubject   = "otp.mail_subject"
	KeyOTPMailBody      = "otp.mail_body"

	// Users
	KeyUserNotFound        = "user.not_found"
	KeyUserDeleted         = "user.deleted"
	KeyUserProfileUpdated  = "user.profile_updated"
	KeyUserPasswordUpdated = "user.password_updated"
	KeyUserPhotoUploaded   = "user.photo_uploaded"
	KeyUserPhotoNotFound   = "user.photo_not_found"
	KeyUserParamsRequired  = "user.params_required"

	// Uploads
	KeyUploadInvalidImage = "upload.invalid_image"
	KeyUploadTooLarge     = "upload.too_large"
	KeyUploadRequired     = "upload.required"

	// Catalog
	KeyProductNotFound = "product.not_found"
	KeyProductCreated  = "product.created"
	KeyPosterCreated   = "poster.created"

	// Favorites, cart, history
	KeyFavoriteAdded    = "favorite.added"
	KeyFavoriteRemoved  = "favorite.removed"
	KeyFavoriteNotFound = "favorite.not_found"
	KeyCartAdded        = "cart.added"
	KeyCartRemoved      = "cart.removed"
	KeyCartNotFound     = "cart.not_found"
	KeyHistoryAdded     = "history.added"
	KeyHistoryRemoved   = "history.removed"
	KeyHistoryCleared   = "history.cleared"
	KeyHistoryNotFound  = "history.not_found"

	// Reviews, addresses, orders
	KeyReviewAdded           = "review.added"
	KeyAddressAdded          = "address.added"
	KeyShippingNotFound      = "shipping.not_found"
	KeyOrderCreated          = "order.created"
	KeyOrderEmpty            = "order.empty"
	KeyNotificationNotFound  = "notification.not_found"
	KeyNotificationList      = "notification.list"
	KeyNotificationRead      = "notification.read"
	KeyNotificationAllRead   = "notification.all_read"
	KeyNotificationDeleted   = "notification.deleted"
	KeyNotificationForbidden = "notification.forbidden"

	// Notification bodies written to the database
	KeyNotifyFavoriteTitle   = "notify.favorite.title"
	KeyNotifyFavoriteMessage = "notify.favorite.message"
	KeyNotifyReviewTitle     = "notify.review.title"
	KeyNotifyReviewMessage   = "notify.review.message"
	KeyNotifyAddressTitle    = "notify.address.title"
	KeyNotifyAddressMessage  = "notify.address.message"
	KeyNotifyOrderTitle      = "notify.order.title"
	KeyNotifyOrderMessage    = "notify.order.message"
)
