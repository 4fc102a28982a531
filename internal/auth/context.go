package auth

import (
	"context"

	"github.com/pragyanai/demotrack/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserName string
	FullName string
	College  string
	Branch   string
	Role     domain.Role
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.Role) bool {
	return u.Role == role
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.Role) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin checks if the user authenticated through the Admin worksheet
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// IsLead checks if the user has been promoted to Lead by an admin
func (u *UserContext) IsLead() bool {
	return u.Role == domain.RoleLead
}
