package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
)

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	ValidateToken(token string) (*models.Claims, error)
}

// UserLookup loads the account behind a token. A missing account is
// reported as (nil, nil).
type UserLookup interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
}

const lookupTimeout = 5 * time.Second

// AuthMiddleware accepts a valid token only while its account still exists
// and is active. Role and tenant come from the stored account.
func AuthMiddleware(tokens TokenValidator, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header is required"})
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization header format must be Bearer <token>"})
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		return withCurrentUser(c, users, claims)
	}
}

// SocketAuth authenticates a websocket upgrade. Browsers cannot set headers
// on the handshake, so the token may also arrive as ?token=.
func SocketAuth(tokens TokenValidator, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Query("token")
		if tokenString == "" {
			tokenString, _ = bearerToken(c.Get("Authorization"))
		}
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication error: token is required"})
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication error: invalid token"})
		}
		return withCurrentUser(c, users, claims)
	}
}

// withCurrentUser refreshes claims from the stored account before handing
// the request on.
func withCurrentUser(c *fiber.Ctx, users UserLookup, claims *models.Claims) error {
	ctx, cancel := context.WithTimeout(c.Context(), lookupTimeout)
	defer cancel()

	user, err := users.FindByID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong. Please try again later."})
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "User no longer exists"})
	}
	if !user.IsActive {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Account is deactivated"})
	}

	c.Locals("user", &models.Claims{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		Role:      user.Role,
	})
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Claims returns the claims stored by AuthMiddleware, or nil.
func Claims(c *fiber.Ctx) *models.Claims {
	claims, _ := c.Locals("user").(*models.Claims)
	return claims
}
