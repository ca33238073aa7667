package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents an uploaded document archived for a consultation
type Document struct {
	ID          uuid.UUID     `json:"id"`
	UserID      int64         `json:"user_id"`
	Filename    string        `json:"filename"`
	MimeType    string        `json:"mime_type"`
	Size        int64         `json:"size"`
	StoragePath string        `json:"storage_path"`
	Operation   OperationKind `json:"operation"`
	CreatedAt   time.Time     `json:"created_at"`
}
