package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"praktikasud-backend/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger to the context and logs each request
func RequestLogger(base logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		log := base.With("request_id", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithLogger(c.Request.Context(), log))

		start := time.Now()
		c.Next()
		log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// NewRouter wires every HTTP route; admin may be nil to disable the admin panel
func NewRouter(log logger.Logger, consultation *ConsultationHandler, documents *DocumentHandler, admin *AdminHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/health", consultation.Health)

	api := r.Group("/api")
	{
		api.GET("/info", consultation.Info)
		api.POST("/practice", consultation.Practice)
		api.POST("/constitutional", consultation.Constitutional)
		api.POST("/voice", consultation.Voice)
		api.POST("/speech", consultation.Speech)

		if documents != nil {
			api.POST("/complaint", documents.Complaint)
			api.POST("/check", documents.Check)
			api.GET("/documents", documents.ListDocuments)
			api.GET("/documents/:id", documents.GetDocument)
			api.GET("/documents/:id/content", documents.DownloadDocument)
		}
	}

	if admin != nil {
		panel := api.Group("/admin", admin.RequireAdmin())
		{
			panel.GET("/analytics", admin.Analytics)
			panel.GET("/users", admin.ListUsers)
			panel.GET("/users/:id/notes", admin.ListNotes)
			panel.POST("/users/:id/notes", admin.AddNote)
			panel.GET("/export/users.csv", admin.ExportUsers)
			panel.GET("/export/requests.csv", admin.ExportRequests)
		}
	}
	return r
}
