package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
)

type AuthService interface {
	Register(ctx context.Context, payload *models.RegisterPayload) (*models.Employee, error)
	Login(ctx context.Context, payload *models.LoginPayload) (*models.Employee, error)
	Me(ctx context.Context, claims *models.Claims) (*models.Employee, error)
}

type TokenIssuer interface {
	GenerateToken(user *models.Employee) (string, error)
}

type AuthHandler struct {
	auth   AuthService
	tokens TokenIssuer
	log    *zap.Logger
}

func NewAuthHandler(auth AuthService, tokens TokenIssuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, log: log}
}

// Register godoc
// @Summary Register company
// @Description Creates a company together with its first admin and returns a token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RegisterPayload true "Company and admin details"
// @Success 201 {object} models.AuthSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 409 {object} models.ErrorResponse "User already exists"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.RegisterPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	admin, err := h.auth.Register(ctx, &payload)
	if err != nil {
		return respondError(c, h.log, err)
	}
	token, err := h.tokens.GenerateToken(admin)
	if err != nil {
		return respondError(c, h.log, apperr.Unexpected("failed to generate token", err))
	}

	return c.Status(fiber.StatusCreated).JSON(models.AuthSuccessResponse{
		Message: "Company registered",
		Token:   token,
		User:    admin,
	})
}

// Login godoc
// @Summary Login
// @Description Checks the credentials and returns a PASETO token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginPayload true "Login credentials"
// @Success 200 {object} models.AuthSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 401 {object} models.ErrorResponse "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.LoginPayload
	if ok, err := bind(c, &payload); !ok {
		return err
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.auth.Login(ctx, &payload)
	if err != nil {
		if apperr.Is(err, apperr.KindUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": apperr.Message(err)})
		}
		return respondError(c, h.log, err)
	}
	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		return respondError(c, h.log, apperr.Unexpected("failed to generate token", err))
	}

	return c.JSON(models.AuthSuccessResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// Logout godoc
// @Summary Logout
// @Description Tokens are stateless; the client discards its copy
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(models.MessageResponse{Message: "Logged out. Discard the token on the client."})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Employee
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.auth.Me(ctx, claims)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(user)
}
