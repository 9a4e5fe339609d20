package handlers

import (
	"net/http"
	"strings"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/scholar-stream/scholarship-service/internal/config"
	"github.com/scholar-stream/scholarship-service/internal/models"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
	"github.com/scholar-stream/scholarship-service/internal/services"
)

// CasdoorAuthMiddleware verifies bearer tokens against Casdoor. The token
// only proves identity; the effective role is always loaded from the role
// store so a demotion takes effect on the next request.
type CasdoorAuthMiddleware struct {
	client   *casdoorsdk.Client
	userRepo repositories.UserRepository
}

func NewCasdoorAuthMiddleware(cfg config.CasdoorConfig, userRepo repositories.UserRepository) *CasdoorAuthMiddleware {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)

	return &CasdoorAuthMiddleware{
		client:   client,
		userRepo: userRepo,
	}
}

// AuthMiddleware returns a Gin middleware function for Casdoor authentication
func (cam *CasdoorAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Missing or malformed authorization header",
			})
			c.Abort()
			return
		}

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid token",
			})
			c.Abort()
			return
		}

		email := strings.ToLower(strings.TrimSpace(claims.User.Email))
		if email == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Token carries no email",
			})
			c.Abort()
			return
		}

		// Role comes from the database, not the token. A missing record
		// means student.
		role, err := cam.userRepo.GetRole(c.Request.Context(), email)
		if err != nil {
			role = models.RoleStudent
		}

		c.Set("user_email", email)
		c.Set("user_name", claims.User.DisplayName)
		c.Set("user_role", role)

		c.Next()
	}
}

// OptionalAuthMiddleware attaches the subject when a valid token is
// present and passes anonymously otherwise. Used on public read routes.
func (cam *CasdoorAuthMiddleware) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := cam.client.ParseJwtToken(token)
		if err != nil {
			c.Next()
			return
		}

		email := strings.ToLower(strings.TrimSpace(claims.User.Email))
		if email == "" {
			c.Next()
			return
		}

		role, err := cam.userRepo.GetRole(c.Request.Context(), email)
		if err != nil {
			role = models.RoleStudent
		}

		c.Set("user_email", email)
		c.Set("user_name", claims.User.DisplayName)
		c.Set("user_role", role)

		c.Next()
	}
}

// RequireRoleMiddleware rejects requests whose stored role carries none of
// the required privileges. Admin and super-admin pass every role gate.
func (cam *CasdoorAuthMiddleware) RequireRoleMiddleware(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "User role not found in context",
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Invalid user role format",
			})
			c.Abort()
			return
		}

		hasRequiredRole := role.IsAdmin()
		for _, required := range requiredRoles {
			if role == required {
				hasRequiredRole = true
				break
			}
			if required == models.RoleModerator && role.IsModerator() {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// GetActorFromContext builds the service-layer actor from the verified
// context. An anonymous request yields an actor with an empty email,
// which the authorization gate treats as unauthenticated.
func GetActorFromContext(c *gin.Context) services.Actor {
	actor := services.Actor{Role: models.RoleStudent}
	if email, ok := c.Get("user_email"); ok {
		if s, ok := email.(string); ok {
			actor.Email = s
		}
	}
	if name, ok := c.Get("user_name"); ok {
		if s, ok := name.(string); ok {
			actor.Name = s
		}
	}
	if role, ok := c.Get("user_role"); ok {
		if r, ok := role.(models.UserRole); ok {
			actor.Role = r
		}
	}
	return actor
}
