package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"beedical/internal/service"
	"beedical/pkg/jwt"
	"beedical/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SubjectKey     contextKey = "subject"
	UserEmailKey   contextKey = "user_email"
	UserNameKey    contextKey = "user_name"
	RoleKey        contextKey = "role"
	TokenIDKey     contextKey = "token_id"
	TokenExpiryKey contextKey = "token_expiry"
)

// Identity is what the identity provider asserts about the caller
type Identity struct {
	Subject   string
	Email     string
	Name      string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	denyList   service.TokenDenyList
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, denyList service.TokenDenyList, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		denyList:   denyList,
		log:        log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		if claims.ID != "" {
			revoked, err := m.denyList.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				m.log.Warnf("Failed to check token revocation: %+v", err)
				response.InternalServerError(w, "Failed to validate token")
				return
			}
			if revoked {
				response.Unauthorized(w, "Token has been revoked")
				return
			}
		}

		ctx := WithIdentity(r.Context(), Identity{
			Subject:   claims.Subject,
			Email:     claims.Email,
			Name:      claims.Name,
			Role:      claims.Role,
			TokenID:   claims.ID,
			ExpiresAt: claims.Expiry(),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity stores id in ctx under the keys read by the getters below
func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, SubjectKey, id.Subject)
	ctx = context.WithValue(ctx, UserEmailKey, id.Email)
	ctx = context.WithValue(ctx, UserNameKey, id.Name)
	ctx = context.WithValue(ctx, RoleKey, id.Role)
	ctx = context.WithValue(ctx, TokenIDKey, id.TokenID)
	ctx = context.WithValue(ctx, TokenExpiryKey, id.ExpiresAt)
	return ctx
}

// GetSubjectFromContext extracts the identity-provider user key from context
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok && subject != ""
}

// GetUserEmailFromContext extracts user email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

func GetUserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}

// GetRoleFromContext extracts role from context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok && tokenID != ""
}

func GetTokenExpiryFromContext(ctx context.Context) (time.Time, bool) {
	expiry, ok := ctx.Value(TokenExpiryKey).(time.Time)
	return expiry, ok
}
