package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/services"
)

type DocumentService interface {
	Upload(ctx context.Context, claims *models.Claims, up *services.Upload) (*models.Document, error)
	List(ctx context.Context, claims *models.Claims) ([]models.DocumentWithUploader, error)
	ListForEmployee(ctx context.Context, companyID, employeeID primitive.ObjectID) ([]models.DocumentWithUploader, error)
	Open(ctx context.Context, claims *models.Claims, id primitive.ObjectID) (*models.Document, io.ReadCloser, error)
	Delete(ctx context.Context, claims *models.Claims, id primitive.ObjectID) error
}

type DocumentHandler struct {
	documents DocumentService
	log       *zap.Logger
}

func NewDocumentHandler(documents DocumentService, log *zap.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, log: log}
}

// Upload godoc
// @Summary Upload document
// @Description Stores the file in GridFS. Admins may set owner_id to file a document for an employee.
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "jpg, jpeg, png, pdf, doc or docx"
// @Param title formData string false "Title, defaults to the file name"
// @Param description formData string false "Description"
// @Param is_public formData bool false "Visible to the whole company"
// @Param owner_id formData string false "Owner employee ID"
// @Success 201 {object} models.Document
// @Failure 400 {object} models.ErrorResponse
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	file, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.log, apperr.Validation("No file uploaded"))
	}
	content, err := file.Open()
	if err != nil {
		return respondError(c, h.log, apperr.Unexpected("Failed to read upload", err))
	}
	defer content.Close()

	isPublic, _ := strconv.ParseBool(c.FormValue("is_public"))
	ctx, cancel := requestContext(c)
	defer cancel()

	doc, err := h.documents.Upload(ctx, claims, &services.Upload{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		IsPublic:    isPublic,
		OwnerID:     c.FormValue("owner_id"),
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Content:     content,
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetAll godoc
// @Summary List documents
// @Description The caller's own documents plus public documents of the company
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.DocumentWithUploader
// @Router /documents [get]
func (h *DocumentHandler) GetAll(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	docs, err := h.documents.List(ctx, claims)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(docs)
}

// GetByEmployee godoc
// @Summary List an employee's documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {array} models.DocumentWithUploader
// @Router /documents/employee/{id} [get]
func (h *DocumentHandler) GetByEmployee(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	docs, err := h.documents.ListForEmployee(ctx, claims.CompanyID, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(docs)
}

// Download godoc
// @Summary Download document
// @Tags Documents
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	doc, content, err := h.documents.Open(ctx, claims, id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	defer content.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return respondError(c, h.log, apperr.Unexpected("Failed to read document", err))
	}

	contentType := doc.FileType
	if contentType == "" {
		contentType = http.DetectContentType(buf.Bytes())
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "inline; filename=\""+doc.FileName+"\"")
	return c.Send(buf.Bytes())
}

// Delete godoc
// @Summary Delete document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	claims, err := currentClaims(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.documents.Delete(ctx, claims, id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(models.MessageResponse{Message: "Document deleted"})
}
