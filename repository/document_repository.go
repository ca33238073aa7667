package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"praktikasud-backend/models"
)

var documentColumns = []string{
	"id",
	"user_id",
	"filename",
	"mime_type",
	"size",
	"storage_path",
	"operation",
	"created_at",
}

// DocumentRepository handles database operations for archived documents
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create records an archived document
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	insert := r.db.Builder().
		Insert("documents").
		Columns(documentColumns...).
		Values(
			doc.ID,
			doc.UserID,
			doc.Filename,
			doc.MimeType,
			doc.Size,
			doc.StoragePath,
			string(doc.Operation),
			doc.CreatedAt,
		)

	_, err := r.db.exec(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	query := r.db.Builder().
		Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id.String()})

	doc, err := scanDocument(r.db.queryRow(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// ListByUserID retrieves all documents uploaded by a user, newest first
func (r *DocumentRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Document, error) {
	query := r.db.Builder().
		Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	rows, err := r.db.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func scanDocument(row rowScanner) (*models.Document, error) {
	doc := &models.Document{}
	var op string
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.Filename,
		&doc.MimeType,
		&doc.Size,
		&doc.StoragePath,
		&op,
		&doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Operation = models.OperationKind(op)
	return doc, nil
}
