package constants

// Application Information
const (
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// User Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
