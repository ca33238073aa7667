package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"praktikasud-backend/extractor"
	"praktikasud-backend/models"
	"praktikasud-backend/repository"
	"praktikasud-backend/service"
	"praktikasud-backend/storage"
)

// DocumentHandler handles HTTP requests for uploaded court documents
type DocumentHandler struct {
	documents   *service.DocumentService
	maxFileSize int64
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documents *service.DocumentService, maxFileSize int64) *DocumentHandler {
	if maxFileSize <= 0 {
		maxFileSize = extractor.DefaultMaxSize
	}
	return &DocumentHandler{
		documents:   documents,
		maxFileSize: maxFileSize,
	}
}

// Complaint handles POST /api/complaint
func (h *DocumentHandler) Complaint(c *gin.Context) {
	h.process(c, models.OperationComplaint)
}

// Check handles POST /api/check
func (h *DocumentHandler) Check(c *gin.Context) {
	h.process(c, models.OperationCheck)
}

func (h *DocumentHandler) process(c *gin.Context, op models.OperationKind) {
	user, ok := userFromForm(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}
	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}

	res, err := h.documents.Process(c.Request.Context(), service.DocumentRequest{
		User:      user,
		Operation: op,
		Filename:  fileHeader.Filename,
		Data:      data,
	})
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Allowed formats: PDF, DOCX, TXT")
		return
	case errors.Is(err, extractor.ErrFileTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		return
	case errors.Is(err, extractor.ErrContentMismatch):
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", err.Error())
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "PROCESSING_FAILED", err.Error())
		return
	}

	out := consultationData(res.ConsultationResult)
	if res.Document != nil {
		out["document"] = res.Document
	}
	respondOK(c, http.StatusOK, out)
}

// ListDocuments handles GET /api/documents?user_id=
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	docs, err := h.documents.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	respondOK(c, http.StatusOK, docs)
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, doc)
}

// DownloadDocument handles GET /api/documents/:id/content
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	doc, ok := h.lookup(c)
	if !ok {
		return
	}

	data, err := h.documents.Download(c.Request.Context(), doc)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Document content not found")
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED", fmt.Sprintf("Failed to download document: %v", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	c.Data(http.StatusOK, doc.MimeType, data)
}

func (h *DocumentHandler) lookup(c *gin.Context) (*models.Document, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID format")
		return nil, false
	}

	doc, err := h.documents.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
		return nil, false
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return nil, false
	}
	return doc, true
}
