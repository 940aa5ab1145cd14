package utils

import "time"

// Roles carried in session tokens.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// TokenHeader is the request header that carries the session token.
const TokenHeader = "token"

// Password bounds apply to patient and doctor passwords alike. bcrypt only
// accepts inputs up to 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// DirectoryCacheKey prefixes the cached public doctor list. Each entry is
// suffixed with the generation read from DirectoryGenerationKey.
const (
	DirectoryCacheKey      = "doctors:public"
	DirectoryGenerationKey = "doctors:public:gen"
)

// DefaultDirectoryCacheTTL is used when no TTL is configured.
const DefaultDirectoryCacheTTL = 5 * time.Minute
