package middleware

import (
	"net/http"
	"slices"

	"beedical/internal/domain/entity"
	"beedical/pkg/response"
)

// RequireRole lets the request through when the token role is one of roles.
// It must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !slices.Contains(roles, role) {
				response.Forbidden(w, "This resource is reserved to "+roleList(roles))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireDoctor guards the doctor dashboard routes
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}

func roleList(roles []string) string {
	out := ""
	for i, role := range roles {
		if i > 0 {
			out += " or "
		}
		out += role + "s"
	}
	return out
}
