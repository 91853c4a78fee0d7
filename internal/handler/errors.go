package handler

// User-facing messages for client responses. These intentionally do not
// expose internal error details. Handlers and tests both reference these
// constants so wording stays consistent.
const (
	ErrMsgInvalidRequest      = "Invalid request body"
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgMissingAuthToken    = "Missing auth token"
	ErrMsgInvalidAuthToken    = "Invalid auth token"
	ErrMsgUserNotFoundError   = "User not found"
	ErrMsgItemNotFoundError   = "Item not found"
	ErrMsgNotEnoughPoints     = "Not enough points"
	ErrMsgEmailInUse          = "Email in use"
	ErrMsgInvalidCredentials  = "Invalid credentials"
	ErrMsgStravaNotConnected  = "Strava not connected"
	ErrMsgStravaSyncFailed    = "Strava sync failed"
	ErrMsgRegisterFailed      = "Register failed"
	ErrMsgLoginFailed         = "Login failed"
	ErrMsgFileTooLarge        = "File size too large. Maximum size is 5MB."
	ErrMsgInvalidFile         = "Invalid file"
	ErrMsgUpdatePictureFailed = "Failed to update profile picture"
	ErrMsgFetchUsersFailed    = "Failed to fetch users"
)

// Strava OAuth redirect failure reasons carried back to the front end as
// ?strava=error&reason=<...>.
const (
	OAuthReasonMissingCode  = "missing_code"
	OAuthReasonMissingState = "missing_state"
	OAuthReasonInvalidToken = "invalid_token"
	OAuthReasonMissingUser  = "missing_user"
	OAuthReasonFailed       = "oauth_failed"
)
