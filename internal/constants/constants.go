package constants

const (
	// ContextKeyUserID holds the authenticated user's ID in the gin context.
	ContextKeyUserID = "user_id"
	// ContextKeyUser holds the authenticated *models.User in the gin context.
	ContextKeyUser = "current_user"

	BearerScheme = "Bearer"
	TokenType    = "bearer"
)

// Pagination
const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Validation
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)
