package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a message safe to show users.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a low-level error into an ErrorInfo. Sensitive detail
// is hidden, but enough context is kept for the user to act on.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM base errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. PostgreSQL errors

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// 3. Network/connection errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Failed to reach an external service. Please try again later",
		}
	}

	// 4. Fallback
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already in use",
		}
	}

	if strings.Contains(errLower, "idx_compatible_groups_model_case") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A compatibility entry already exists for this model and case type",
		}
	}

	if strings.Contains(errLower, "idx_product_variants_product_case") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A variant already exists for this product and case type",
		}
	}

	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This identifier is already in use",
		}
	}

	if strings.Contains(errLower, "mobile_brands") || strings.Contains(errLower, "idx_mobile_brands_name") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "A brand with this name already exists",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "This record already exists",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "brand_id") {
		return ErrorInfo{
			Code:    BrandNotFound,
			Message: "The referenced brand does not exist",
		}
	}
	if strings.Contains(errLower, "model_id") {
		return ErrorInfo{
			Code:    ModelNotFound,
			Message: "The referenced phone model does not exist",
		}
	}
	if strings.Contains(errLower, "product_id") {
		return ErrorInfo{
			Code:    ProductNotFound,
			Message: "The referenced product does not exist",
		}
	}
	if strings.Contains(errLower, "category_id") {
		return ErrorInfo{
			Code:    CategoryNotFound,
			Message: "The referenced category does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceConflict,
		Message: "This record is referenced by other data",
	}
}

func getNotFoundMessage(context string) string {
	switch context {
	case "brand":
		return "Brand not found"
	case "model":
		return "Phone model not found"
	case "product":
		return "Product not found"
	case "category":
		return "Category not found"
	case "content":
		return "Case content not found"
	case "user":
		return "User not found"
	default:
		return "The requested resource was not found"
	}
}

func getDefaultErrorMessage(context string) string {
	switch context {
	case "brand", "model", "product", "category", "content":
		return "Failed to process the catalog request. Please try again later"
	case "cart":
		return "Failed to update the cart. Please try again later"
	default:
		return "An internal error occurred. Please try again later"
	}
}
