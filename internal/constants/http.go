package constants

// HTTP Header Names
const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized    = "Unauthorized access"
	MsgAdminRequired   = "Admin access required"
	MsgInvalidRequest  = "Invalid request format"
	MsgInternalError   = "Internal server error"
	MsgPayloadTooLarge = "File too large"
)

// Auth messages
const (
	MsgRegistered          = "User registered successfully"
	MsgRegistrationFailed  = "Registration failed"
	MsgLoginSuccess        = "Login successful"
	MsgLoginFailed         = "Login failed"
	MsgCredentialsRequired = "Email and password are required"
	MsgInvalidToken        = "Invalid token"
	MsgLoggedOut           = "Logged out successfully"
)

// User messages
const (
	MsgProfileUpdated      = "Profile updated successfully"
	MsgProfileUpdateFailed = "Failed to update profile"
	MsgProfileFetchFailed  = "Failed to get profile"
	MsgUsersFetchFailed    = "Failed to get users"
	MsgUserFetchFailed     = "Failed to get user"
	MsgUserDeleted         = "User deleted successfully"
	MsgUserDeleteFailed    = "Failed to delete user"
)

// File messages
const (
	MsgNoFileProvided   = "No file provided"
	MsgFileUploaded     = "File uploaded successfully"
	MsgFileUploadFailed = "File upload failed"
	MsgFileDeleted      = "File deleted successfully"
	MsgFileDeleteFailed = "File deletion failed"
	MsgFileReadFailed   = "File download failed"
)
