package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront maps these codes to display messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	BrandNotFound    = "CATALOG_BRAND_NOT_FOUND"
	ModelNotFound    = "CATALOG_MODEL_NOT_FOUND"
	ProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"
	CategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"
	InvalidCaseType  = "CATALOG_INVALID_CASE_TYPE"

	// ==================== Content (CONTENT_) ====================
	ContentNotFound     = "CONTENT_NOT_FOUND"
	ContentInvalidBlock = "CONTENT_INVALID_BLOCK"

	// ==================== Cart (CART_) ====================
	CartSessionRequired   = "CART_SESSION_REQUIRED"
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartProductNotVisible = "CART_PRODUCT_NOT_VISIBLE"
	CartInvalidQuantity   = "CART_INVALID_QUANTITY"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Import (IMPORT_) ====================
	ImportInvalidFile  = "IMPORT_INVALID_FILE"
	ImportEmptyFile    = "IMPORT_EMPTY_FILE"
	ImportScrapeFailed = "IMPORT_SCRAPE_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"
)
