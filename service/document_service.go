package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"praktikasud-backend/extractor"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
	"praktikasud-backend/storage"
)

// NoTextMessage is returned when a document yields no text
const NoTextMessage = "❌ Не удалось извлечь текст из документа. Проверьте, что файл не поврежден."

var (
	ErrExtractorNotSet     = errors.New("text extractor not set")
	ErrDocumentsNotSet     = errors.New("document archive not set")
	ErrUnsupportedDocument = errors.New("document operation must be complaint or check")
)

// TextExtractor validates documents and extracts their text
type TextExtractor interface {
	Validate(filename string, data []byte) (extractor.Format, error)
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// DocumentStore keeps document metadata
type DocumentStore interface {
	Create(ctx context.Context, doc *models.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByUserID(ctx context.Context, userID int64) ([]*models.Document, error)
}

// DocumentService drafts complaints and checks uploaded documents
type DocumentService struct {
	extractor    TextExtractor
	storage      storage.Storage
	documents    DocumentStore
	consultation *ConsultationService
	log          logger.Logger
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithExtractor sets the text extractor
func DocumentWithExtractor(e TextExtractor) DocumentServiceOption {
	return func(s *DocumentService) {
		s.extractor = e
	}
}

// DocumentWithStorage sets the archive storage
func DocumentWithStorage(st storage.Storage) DocumentServiceOption {
	return func(s *DocumentService) {
		s.storage = st
	}
}

// DocumentWithRepository sets the document metadata repository
func DocumentWithRepository(r DocumentStore) DocumentServiceOption {
	return func(s *DocumentService) {
		s.documents = r
	}
}

// DocumentWithConsultation sets the consultation pipeline
func DocumentWithConsultation(c *ConsultationService) DocumentServiceOption {
	return func(s *DocumentService) {
		s.consultation = c
	}
}

// DocumentWithLogger sets the logger
func DocumentWithLogger(l logger.Logger) DocumentServiceOption {
	return func(s *DocumentService) {
		s.log = l
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DocumentService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// DocumentRequest represents an uploaded document to process
type DocumentRequest struct {
	User      models.User
	Operation models.OperationKind
	Filename  string
	Data      []byte
}

// DocumentResult represents the processed document answer
type DocumentResult struct {
	Document *models.Document
	*ConsultationResult
}

var documentPreambles = map[models.OperationKind]string{
	models.OperationComplaint: "📝 <b>Проект жалобы:</b>\n\n",
	models.OperationCheck:     "📋 <b>Анализ документа:</b>\n\n",
}

// Process validates, archives and extracts a document, then drafts a complaint or checks it.
// Validation failures are returned as errors; unreadable documents yield NoTextMessage.
func (s *DocumentService) Process(ctx context.Context, req DocumentRequest) (*DocumentResult, error) {
	preamble, ok := documentPreambles[req.Operation]
	if !ok {
		return nil, ErrUnsupportedDocument
	}
	if s.extractor == nil {
		return nil, ErrExtractorNotSet
	}
	if s.consultation == nil {
		return nil, errors.New("consultation service not set")
	}
	log := s.logger(ctx).With("operation", req.Operation, "file", req.Filename, "user_id", req.User.UserID)

	format, err := s.extractor.Validate(req.Filename, req.Data)
	if err != nil && !errors.Is(err, extractor.ErrNoText) {
		return nil, err
	}

	result := &DocumentResult{}
	if err == nil {
		result.Document = s.archive(ctx, log, req, format)
	}

	text, err := s.extractor.Extract(ctx, req.Filename, req.Data)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Warn("No text extracted from document", "error", err)
		result.ConsultationResult = failureResult(NoTextMessage)
		return result, nil
	}

	res, err := s.consultation.Consult(ctx, ConsultationRequest{
		User:      req.User,
		Operation: req.Operation,
		Text:      text,
		Preamble:  preamble,
	})
	if err != nil {
		return nil, err
	}
	result.ConsultationResult = res
	return result, nil
}

// archive stores the upload and its metadata; failures are logged and skipped
func (s *DocumentService) archive(ctx context.Context, log logger.Logger, req DocumentRequest, format extractor.Format) *models.Document {
	if s.storage == nil {
		return nil
	}
	doc := &models.Document{
		ID:        uuid.New(),
		UserID:    req.User.UserID,
		Filename:  req.Filename,
		MimeType:  extractor.DetectMIME(req.Data),
		Size:      int64(len(req.Data)),
		Operation: req.Operation,
	}

	path, err := s.storage.Upload(ctx, doc.ID, req.Filename, bytes.NewReader(req.Data))
	if err != nil {
		log.Error("Failed to archive document", "error", err)
		return nil
	}
	doc.StoragePath = path

	if s.documents != nil {
		if err := s.documents.Create(ctx, doc); err != nil {
			log.Error("Failed to record document", "error", err)
		}
	}
	log.Info("Document archived", "document_id", doc.ID, "format", format, "path", path)
	return doc
}

// List returns the documents a user has uploaded
func (s *DocumentService) List(ctx context.Context, userID int64) ([]*models.Document, error) {
	if s.documents == nil {
		return nil, ErrDocumentsNotSet
	}
	return s.documents.ListByUserID(ctx, userID)
}

// Get returns document metadata by ID
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	if s.documents == nil {
		return nil, ErrDocumentsNotSet
	}
	return s.documents.GetByID(ctx, id)
}

// Download returns an archived document's content
func (s *DocumentService) Download(ctx context.Context, doc *models.Document) ([]byte, error) {
	if s.storage == nil {
		return nil, ErrDocumentsNotSet
	}
	rc, err := s.storage.Download(ctx, doc.StoragePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}
