package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalResolver builds the Principal for each request. Tokens only prove
// identity; role and verification status are always read fresh from the local
// DB so a stale or tampered role claim never grants access.
type PrincipalResolver struct {
	jwks         *auth.Provider
	cfg          *config.Config
	users        domain.UserRepository
	verification domain.VerificationRepository
}

func NewPrincipalResolver(jwks *auth.Provider, cfg *config.Config, users domain.UserRepository, verification domain.VerificationRepository) *PrincipalResolver {
	return &PrincipalResolver{jwks: jwks, cfg: cfg, users: users, verification: verification}
}

// RequireAuth rejects requests without a valid token.
func (r *PrincipalResolver) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := r.resolve(c)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, err.Error(), nil)
			c.Abort()
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// OptionalAuth resolves a Principal when a token is present and falls back to
// the anonymous principal otherwise. Public read routes use this so privacy
// levels can distinguish authenticated viewers from anonymous ones.
func (r *PrincipalResolver) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractToken(c) == "" {
			setPrincipal(c, domain.AnonymousPrincipal())
			c.Next()
			return
		}

		principal, err := r.resolve(c)
		if err != nil {
			// A malformed token on a public route is treated as no token at
			// all rather than a hard failure.
			slog.Debug("optional auth fell back to anonymous", "error", err)
			setPrincipal(c, domain.AnonymousPrincipal())
			c.Next()
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Must run after
// RequireAuth.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if !allowed[principal.Role] {
			response.Error(c, http.StatusForbidden, "Insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *PrincipalResolver) resolve(c *gin.Context) (domain.Principal, error) {
	tokenString := extractToken(c)
	if tokenString == "" {
		return domain.Principal{}, fmt.Errorf("authorization header or auth_token cookie required")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
			// HS256 tokens are signed with the shared auth-service secret.
			if r.cfg.AuthJWTSecret == "" {
				return nil, fmt.Errorf("HS256 token received but AUTH_JWT_SECRET is not configured")
			}
			return []byte(r.cfg.AuthJWTSecret), nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			return r.jwks.KeyFunc(token)
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	})
	if err != nil || !token.Valid {
		return domain.Principal{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Principal{}, fmt.Errorf("token missing subject")
	}

	ctx := c.Request.Context()
	user, err := r.users.GetByID(ctx, sub)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("user lookup failed")
	}
	if user == nil || user.IsDisabled {
		return domain.Principal{}, fmt.Errorf("user not found")
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		// Unknown stored role: fail closed to the least-privileged role.
		slog.Warn("unknown role in users table", "user_id", sub, "role", user.Role)
		role = domain.RoleCandidate
	}

	status, err := r.verification.GetStatus(ctx, sub)
	if err != nil {
		// Verification gating fails closed: on lookup error the account is
		// treated as unverified, not rejected outright.
		slog.Warn("verification status lookup failed", "user_id", sub, "error", err)
		status = domain.VerificationStatus{}
	}

	if email, _ := claims["email"].(string); email != "" {
		c.Set(string(domain.KeyUserEmail), email)
	}

	return domain.Principal{
		ID:         sub,
		Role:       role,
		IsVerified: status.FullyVerified(),
	}, nil
}

func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func setPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(string(domain.KeyPrincipal), p)
	c.Set(string(domain.KeyUserID), p.ID)
	c.Set(string(domain.KeyUserRole), string(p.Role))
}

// GetPrincipal returns the resolved Principal, or the anonymous principal when
// no resolver ran on this route.
func GetPrincipal(c *gin.Context) domain.Principal {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return domain.AnonymousPrincipal()
	}
	p, ok := v.(domain.Principal)
	if !ok {
		return domain.AnonymousPrincipal()
	}
	return p
}
