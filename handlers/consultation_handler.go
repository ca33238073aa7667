package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"praktikasud-backend/config"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
	"praktikasud-backend/service"
)

// MaxAudioSize is the largest voice message accepted for transcription
const MaxAudioSize = 25 * 1024 * 1024

// ConsultationHandler handles HTTP requests for text and voice consultations
type ConsultationHandler struct {
	consultation *service.ConsultationService
	voice        *service.VoiceService
}

// NewConsultationHandler creates a new consultation handler
func NewConsultationHandler(consultation *service.ConsultationService, voice *service.VoiceService) *ConsultationHandler {
	return &ConsultationHandler{
		consultation: consultation,
		voice:        voice,
	}
}

// Health handles GET /health
func (h *ConsultationHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": config.BotName,
	})
}

// Info handles GET /api/info
func (h *ConsultationHandler) Info(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"name":     config.BotName,
		"welcome":  config.WelcomeMessage,
		"about":    config.AboutMessage,
		"app_link": config.AppLink,
	})
}

type practiceRequest struct {
	User       userPayload `json:"user"`
	Text       string      `json:"text"`
	VoiceReply bool        `json:"voice_reply"`
}

// Practice handles POST /api/practice
func (h *ConsultationHandler) Practice(c *gin.Context) {
	h.consult(c, models.OperationPractice)
}

// Constitutional handles POST /api/constitutional
func (h *ConsultationHandler) Constitutional(c *gin.Context) {
	h.consult(c, models.OperationConstitutional)
}

func (h *ConsultationHandler) consult(c *gin.Context, op models.OperationKind) {
	var req practiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	res, err := h.consultation.Consult(c.Request.Context(), service.ConsultationRequest{
		User:      req.User.toModel(),
		Operation: op,
		Text:      req.Text,
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CONSULTATION_FAILED", err.Error())
		return
	}

	data := consultationData(res)
	if req.VoiceReply && op == models.OperationPractice && !res.Degraded {
		h.attachAudio(c, data, res.Text())
	}
	respondOK(c, http.StatusOK, data)
}

// attachAudio adds a spoken version of the answer; failures only drop the audio
func (h *ConsultationHandler) attachAudio(c *gin.Context, data gin.H, text string) {
	if h.voice == nil {
		return
	}
	audio, err := h.voice.Speak(c.Request.Context(), text)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("Voice reply skipped", "error", err)
		return
	}
	data["audio"] = base64.StdEncoding.EncodeToString(audio)
	data["audio_format"] = "ogg"
}

// Voice handles POST /api/voice
func (h *ConsultationHandler) Voice(c *gin.Context) {
	if h.voice == nil {
		respondError(c, http.StatusServiceUnavailable, "VOICE_DISABLED", "Voice processing is not configured")
		return
	}
	user, ok := userFromForm(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid user_id format")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_AUDIO", "Audio file is required")
		return
	}
	if fileHeader.Size > MaxAudioSize {
		respondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", fmt.Sprintf("Audio size exceeds maximum of %d bytes", MaxAudioSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, MaxAudioSize))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}

	format := c.PostForm("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	}

	res, err := h.voice.ProcessVoice(c.Request.Context(), service.VoiceRequest{
		User:   user,
		Audio:  bytes.NewReader(audio),
		Format: format,
	})
	if errors.Is(err, service.ErrEmptyAudio) {
		respondError(c, http.StatusBadRequest, "EMPTY_AUDIO", err.Error())
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "VOICE_FAILED", err.Error())
		return
	}

	data := consultationData(res.ConsultationResult)
	data["transcript"] = res.Transcript
	respondOK(c, http.StatusOK, data)
}

type speechRequest struct {
	Text string `json:"text" binding:"required"`
}

// Speech handles POST /api/speech
func (h *ConsultationHandler) Speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if h.voice == nil {
		respondError(c, http.StatusServiceUnavailable, "VOICE_DISABLED", "Voice processing is not configured")
		return
	}

	audio, err := h.voice.Speak(c.Request.Context(), req.Text)
	switch {
	case errors.Is(err, service.ErrNothingToSay):
		respondError(c, http.StatusBadRequest, "NOTHING_TO_SAY", "Text has nothing to speak")
		return
	case errors.Is(err, service.ErrSynthesizerNotSet):
		respondError(c, http.StatusServiceUnavailable, "VOICE_DISABLED", "Speech synthesis is not configured")
		return
	case err != nil:
		respondError(c, http.StatusBadGateway, "SYNTHESIS_FAILED", err.Error())
		return
	}

	c.Header("Content-Disposition", "inline; filename=\"answer.ogg\"")
	c.Data(http.StatusOK, "audio/ogg", audio)
}
