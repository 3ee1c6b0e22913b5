// Package permission defines the pluggable authorization policy consumed by
// admin views.
//
// Policies answer capability questions only; they never render responses or
// touch storage, so feature modules can swap enforcement strategies without
// changing view behavior.
package permission

import "context"

// User identifies the authenticated admin operator for policy checks.
type User struct {
	ID    string
	Roles []string
}

// HasRole reports whether the user carries the named role.
func (u User) HasRole(role string) bool {
	for _, candidate := range u.Roles {
		if candidate == role {
			return true
		}
	}
	return false
}

// Policy is a pluggable authorization strategy for admin actions.
//
// Actions are short verbs such as "add", "change" or "delete".
type Policy interface {
	UserHasPermission(user User, action string) bool
	UserHasAnyPermission(user User, actions []string) bool
}

// RolePolicy grants actions to users holding at least one of the configured
// roles. An action missing from Grants is denied for everyone.
type RolePolicy struct {
	Grants map[string][]string
}

// UserHasPermission reports whether user may perform action.
func (p RolePolicy) UserHasPermission(user User, action string) bool {
	roles, ok := p.Grants[action]
	if !ok {
		return false
	}
	for _, role := range roles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}

// UserHasAnyPermission reports whether user may perform any of actions.
func (p RolePolicy) UserHasAnyPermission(user User, actions []string) bool {
	for _, action := range actions {
		if p.UserHasPermission(user, action) {
			return true
		}
	}
	return false
}

// Open grants every action to every user.
type Open struct{}

// UserHasPermission always reports true.
func (Open) UserHasPermission(User, string) bool { return true }

// UserHasAnyPermission always reports true.
func (Open) UserHasAnyPermission(User, []string) bool { return true }

// userContextKey is the context key for the authenticated admin user.
type userContextKey struct{}

// WithUser stores the authenticated user in context.
func WithUser(ctx context.Context, user User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user stored in context.
func UserFromContext(ctx context.Context) User {
	if ctx == nil {
		return User{}
	}
	user, _ := ctx.Value(userContextKey{}).(User)
	return user
}
