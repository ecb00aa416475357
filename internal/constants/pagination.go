package constants

// Pagination Query Parameters
const (
	QueryParamPage   = "page"
	QueryParamLimit  = "limit"
	QueryParamSearch = "search"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage   = "1"
	DefaultLimit  = "10"
	DefaultSearch = ""
)

// Fallbacks for missing or invalid values. Limit has no upper bound.
const (
	DefaultPageInt  = 1
	DefaultLimitInt = 10
)
