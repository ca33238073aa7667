package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"praktikasud-backend/logger"
	"praktikasud-backend/models"
	"praktikasud-backend/repository"
	"praktikasud-backend/service"
)

const (
	adminIDHeader  = "X-Admin-ID"
	adminKeyHeader = "X-Admin-Key"
	adminIDKey     = "admin_id"

	maxUsersPage = 100
)

// AdminHandler handles HTTP requests for the CRM admin panel
type AdminHandler struct {
	crm     *service.CRMService
	keyHash string
}

// NewAdminHandler creates a new admin handler; an empty keyHash disables the key check
func NewAdminHandler(crm *service.CRMService, keyHash string) *AdminHandler {
	return &AdminHandler{
		crm:     crm,
		keyHash: keyHash,
	}
}

// RequireAdmin rejects requests that do not come from a configured administrator
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := strconv.ParseInt(c.GetHeader(adminIDHeader), 10, 64)
		if err != nil || !h.crm.IsAdmin(adminID) {
			respondError(c, http.StatusForbidden, "FORBIDDEN", "❌ У вас нет прав администратора")
			c.Abort()
			return
		}

		if h.keyHash != "" {
			key := c.GetHeader(adminKeyHeader)
			if err := bcrypt.CompareHashAndPassword([]byte(h.keyHash), []byte(key)); err != nil {
				logger.FromContext(c.Request.Context()).Warn("Admin key rejected", "admin_id", adminID)
				respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid admin key")
				c.Abort()
				return
			}
		}

		c.Set(adminIDKey, adminID)
		c.Next()
	}
}

// Analytics handles GET /api/admin/analytics?days=7
func (h *AdminHandler) Analytics(c *gin.Context) {
	days := queryInt(c, "days", 7)
	a, err := h.crm.Analytics(c.Request.Context(), days)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "ANALYTICS_FAILED", err.Error())
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"analytics": a,
		"message":   service.FormatAnalytics(a),
	})
}

// ListUsers handles GET /api/admin/users?page=1&limit=10
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if limit > maxUsersPage {
		limit = maxUsersPage
	}

	users, total, err := h.crm.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"users": users,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type noteRequest struct {
	NoteText string `json:"note_text" binding:"required"`
}

// AddNote handles POST /api/admin/users/:id/notes
func (h *AdminHandler) AddNote(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID format")
		return
	}
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	note, err := h.crm.AddNote(c.Request.Context(), c.GetInt64(adminIDKey), userID, req.NoteText)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	case errors.Is(err, service.ErrEmptyNote):
		respondError(c, http.StatusBadRequest, "EMPTY_NOTE", err.Error())
		return
	case err != nil:
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	respondOK(c, http.StatusCreated, note)
}

// ListNotes handles GET /api/admin/users/:id/notes
func (h *AdminHandler) ListNotes(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user ID format")
		return
	}
	notes, err := h.crm.ListNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", err.Error())
		return
	}
	if notes == nil {
		notes = []models.AdminNote{}
	}
	respondOK(c, http.StatusOK, notes)
}

// ExportUsers handles GET /api/admin/export/users.csv
func (h *AdminHandler) ExportUsers(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.crm.ExportUsersCSV(c.Request.Context(), &buf); err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to export users", "error", err)
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}
	sendCSV(c, "users", buf.Bytes())
}

// ExportRequests handles GET /api/admin/export/requests.csv?days=30
func (h *AdminHandler) ExportRequests(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.crm.ExportRequestsCSV(c.Request.Context(), &buf, queryInt(c, "days", 30)); err != nil {
		logger.FromContext(c.Request.Context()).Error("Failed to export requests", "error", err)
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}
	sendCSV(c, "requests", buf.Bytes())
}

func sendCSV(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"", name, time.Now().Format("20060102")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
