package middleware

import (
	"net/http"

	"rehab-scheduling/internal/domain/entity"
	"rehab-scheduling/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoleIDs ...int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleID, ok := GetRoleIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRoleID := range allowedRoleIDs {
				if roleID == allowedRoleID {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCenterStaff is a convenience middleware for staff-only endpoints
func RequireCenterStaff(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDCenterStaff)(next)
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient)(next)
}

// RequireBooker admits the roles that may create or edit appointments
func RequireBooker(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDPatient, entity.RoleIDCenterStaff)(next)
}

// RequireStaffOrPractitioner guards audit history
func RequireStaffOrPractitioner(next http.Handler) http.Handler {
	return RequireRole(entity.RoleIDCenterStaff, entity.RoleIDPractitioner)(next)
}
