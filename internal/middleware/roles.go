package middleware

// Role names understood by RoleMiddleware and the casbin policy.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
