package errors

// Stable machine-readable error codes, format CATEGORY_SPECIFIC_DETAIL.
// Clients branch on these codes rather than on HTTP status or message text.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthAuthorizationRequired = "AUTH_AUTHORIZATION_REQUIRED" // no bearer token in the request
	AuthInvalidCredentials    = "AUTH_INVALID_CREDENTIALS"    // unknown username or wrong password
	AuthTokenExpired          = "AUTH_TOKEN_EXPIRED"          // token past its expiry
	AuthTokenInvalid          = "AUTH_TOKEN_INVALID"          // bad signature, shape, or token class
	AuthTokenRevoked          = "AUTH_TOKEN_REVOKED"          // token identifier is in the blocklist
	AuthTokenNotFresh         = "AUTH_TOKEN_NOT_FRESH"        // fresh token required
	AuthUsernameExists        = "AUTH_USERNAME_EXISTS"        // username already taken

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // admin privilege required
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role claim missing from context

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed or missing payload field
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // non-numeric path id
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Domain (STORE_/ITEM_/TAG_/USER_) ====================
	StoreNotFound   = "STORE_NOT_FOUND"
	ItemNotFound    = "ITEM_NOT_FOUND"
	TagNotFound     = "TAG_NOT_FOUND"
	TagLinkedToItem = "TAG_LINKED_TO_ITEM" // tag still linked to an item, cannot delete
	TagNotLinked    = "TAG_NOT_LINKED"     // unlink requested for a tag the item does not carry
	UserNotFound    = "USER_NOT_FOUND"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
