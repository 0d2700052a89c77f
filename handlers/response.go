package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/config/middleware"
	"staffly/models"
	"staffly/pkg/apperr"
	util "staffly/pkg/utils"
)

const requestTimeout = 10 * time.Second

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), requestTimeout)
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidState:
		return fiber.StatusBadRequest
	case apperr.KindDuplicateOperation, apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindUnauthorized:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as {"error": msg}. Unexpected errors are logged
// and their detail is kept out of the response.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status := statusFor(apperr.KindOf(err))
	if status == fiber.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(fiber.Map{"error": apperr.Message(err)})
}

// bind parses and validates the JSON body into out. When it returns false the
// response has already been written and the handler returns the error as is.
func bind(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "details": err.Error()})
	}
	if errs := util.ValidateStruct(out); errs != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "errors": errs})
	}
	return true, nil
}

func paramID(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("Invalid ID format")
	}
	return id, nil
}

func currentClaims(c *fiber.Ctx) (*models.Claims, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil, apperr.Unauthorized("Not authenticated")
	}
	return claims, nil
}
