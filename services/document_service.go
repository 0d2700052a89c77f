package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/repository"
)

var allowedDocumentExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".pdf": true, ".doc": true, ".docx": true,
}

type DocumentService struct {
	documents repository.DocumentRepository
	employees repository.EmployeeRepository
	maxBytes  int64
}

func NewDocumentService(documents repository.DocumentRepository, employees repository.EmployeeRepository, maxBytes int64) *DocumentService {
	return &DocumentService{documents: documents, employees: employees, maxBytes: maxBytes}
}

type Upload struct {
	Title       string
	Description string
	IsPublic    bool
	// OwnerID lets an admin file a document for an employee.
	OwnerID     string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (s *DocumentService) Upload(ctx context.Context, claims *models.Claims, up *Upload) (*models.Document, error) {
	rawExt := filepath.Ext(up.FileName)
	ext := strings.ToLower(rawExt)
	if !allowedDocumentExt[ext] {
		return nil, apperr.Validation("Images and Documents only!")
	}
	if up.Size <= 0 {
		return nil, apperr.Validation("No file uploaded")
	}
	if up.Size > s.maxBytes {
		return nil, apperr.Validation("File is too large")
	}
	title := strings.TrimSpace(up.Title)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(up.FileName), rawExt)
	}

	owner := claims.UserID
	if up.OwnerID != "" {
		if !claims.IsAdmin() {
			return nil, apperr.Unauthorized("Only admins can upload for another employee")
		}
		id, err := parseID(up.OwnerID, "owner_id")
		if err != nil {
			return nil, err
		}
		emp, err := s.employees.FindByID(ctx, id)
		if err != nil {
			return nil, unexpected("failed to load employee", err)
		}
		if emp == nil || emp.CompanyID != claims.CompanyID {
			return nil, apperr.NotFound("User not found")
		}
		owner = id
	}

	doc := &models.Document{
		CompanyID:   claims.CompanyID,
		Title:       title,
		Description: strings.TrimSpace(up.Description),
		FileName:    filepath.Base(up.FileName),
		FileType:    up.ContentType,
		FileSize:    up.Size,
		UploadedBy:  claims.UserID,
		Owner:       owner,
		IsPublic:    up.IsPublic,
	}
	if err := s.documents.Create(ctx, doc, io.LimitReader(up.Content, s.maxBytes)); err != nil {
		return nil, unexpected("failed to store document", err)
	}
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, claims *models.Claims) ([]models.DocumentWithUploader, error) {
	docs, err := s.documents.ListVisible(ctx, claims.CompanyID, claims.UserID)
	if err != nil {
		return nil, unexpected("failed to list documents", err)
	}
	return docs, nil
}

func (s *DocumentService) ListForEmployee(ctx context.Context, companyID, employeeID primitive.ObjectID) ([]models.DocumentWithUploader, error) {
	docs, err := s.documents.ListByOwner(ctx, companyID, employeeID)
	if err != nil {
		return nil, unexpected("failed to list documents", err)
	}
	return docs, nil
}

// Open returns the document and a reader over its content. The caller closes
// the reader.
func (s *DocumentService) Open(ctx context.Context, claims *models.Claims, id primitive.ObjectID) (*models.Document, io.ReadCloser, error) {
	doc, err := s.documents.FindByID(ctx, claims.CompanyID, id)
	if err != nil {
		return nil, nil, unexpected("failed to load document", err)
	}
	if doc == nil {
		return nil, nil, apperr.NotFound("Document not found")
	}
	if !doc.IsPublic && !canManage(claims, doc) {
		return nil, nil, apperr.Unauthorized("Not authorized")
	}

	content, err := s.documents.Open(ctx, doc.FileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			return nil, nil, apperr.NotFound("File not found")
		}
		return nil, nil, unexpected("failed to open document", err)
	}
	return doc, content, nil
}

func (s *DocumentService) Delete(ctx context.Context, claims *models.Claims, id primitive.ObjectID) error {
	doc, err := s.documents.FindByID(ctx, claims.CompanyID, id)
	if err != nil {
		return unexpected("failed to load document", err)
	}
	if doc == nil {
		return apperr.NotFound("Document not found")
	}
	if !canManage(claims, doc) {
		return apperr.Unauthorized("Not authorized")
	}
	if err := s.documents.Delete(ctx, doc); err != nil {
		return unexpected("failed to delete document", err)
	}
	return nil
}

func canManage(claims *models.Claims, doc *models.Document) bool {
	return claims.IsAdmin() || doc.Owner == claims.UserID || doc.UploadedBy == claims.UserID
}
