package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"praktikasud-backend/legal"
	"praktikasud-backend/logger"
	"praktikasud-backend/models"
)

// FailureMarker prefixes every user-facing failure message
const FailureMarker = "❌"

const (
	transcribeQuotaMessage   = "❌ Превышена квота OpenAI API. Попробуйте позже или напишите текстом."
	transcribeFormatMessage  = "❌ Неподдерживаемый формат аудио. Попробуйте записать голосовое сообщение еще раз."
	transcribeAudioMessage   = "❌ Ошибка обработки аудио файла. Проверьте качество записи."
	transcribeGenericMessage = "❌ Ошибка распознавания речи. Попробуйте написать вопрос текстом."

	// EmptyTranscriptMessage is returned when speech was recognized as nothing
	EmptyTranscriptMessage = "❌ Не удалось распознать речь. Попробуйте записать сообщение еще раз более четко."
)

var (
	ErrEmptyAudio        = errors.New("audio is empty")
	ErrNothingToSay      = errors.New("no speakable text")
	ErrTranscriberNotSet = errors.New("transcriber not set")
	ErrSynthesizerNotSet = errors.New("speech synthesizer not set")
)

// Transcriber converts speech to text
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, format string) (string, error)
}

// SpeechSynthesizer converts text to Ogg/Opus audio
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}

// VoiceService handles voice questions and spoken answers
type VoiceService struct {
	transcriber  Transcriber
	synthesizer  SpeechSynthesizer
	consultation *ConsultationService
	maxSpeech    int
	log          logger.Logger
}

// VoiceServiceOption is a functional option for VoiceService
type VoiceServiceOption func(*VoiceService)

// VoiceWithTranscriber sets the transcriber
func VoiceWithTranscriber(t Transcriber) VoiceServiceOption {
	return func(s *VoiceService) {
		s.transcriber = t
	}
}

// VoiceWithSynthesizer sets the speech synthesizer
func VoiceWithSynthesizer(sy SpeechSynthesizer) VoiceServiceOption {
	return func(s *VoiceService) {
		s.synthesizer = sy
	}
}

// VoiceWithConsultation sets the consultation pipeline used for recognized questions
func VoiceWithConsultation(c *ConsultationService) VoiceServiceOption {
	return func(s *VoiceService) {
		s.consultation = c
	}
}

// VoiceWithLogger sets the logger
func VoiceWithLogger(l logger.Logger) VoiceServiceOption {
	return func(s *VoiceService) {
		s.log = l
	}
}

// NewVoiceService creates a new voice service
func NewVoiceService(opts ...VoiceServiceOption) *VoiceService {
	s := &VoiceService{maxSpeech: legal.MaxSpeechLength}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *VoiceService) logger(ctx context.Context) logger.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.FromContext(ctx)
}

// Transcribe returns the recognized text, "" for silence, or a marker message on failure
func (s *VoiceService) Transcribe(ctx context.Context, audio io.Reader, format string) string {
	log := s.logger(ctx)
	if s.transcriber == nil {
		log.Error("Transcription failed", "error", ErrTranscriberNotSet)
		return transcribeGenericMessage
	}
	text, err := s.transcriber.Transcribe(ctx, audio, format)
	if err != nil {
		log.Error("Transcription failed", "format", format, "error", err)
		return transcriptionFailure(err)
	}
	text = strings.TrimSpace(text)
	log.Info("Voice message transcribed", "chars", len([]rune(text)))
	return text
}

func transcriptionFailure(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient_quota") || strings.Contains(msg, "429"):
		return transcribeQuotaMessage
	case strings.Contains(msg, "invalid_request_error"):
		return transcribeFormatMessage
	case strings.Contains(strings.ToLower(msg), "audio"):
		return transcribeAudioMessage
	default:
		return transcribeGenericMessage
	}
}

// VoiceRequest represents a recorded voice question
type VoiceRequest struct {
	User   models.User
	Audio  io.Reader
	Format string
}

// VoiceResult represents the answer to a voice question
type VoiceResult struct {
	Transcript string
	*ConsultationResult
}

// ProcessVoice transcribes the audio and runs the practice search on the transcript
func (s *VoiceService) ProcessVoice(ctx context.Context, req VoiceRequest) (*VoiceResult, error) {
	if s.consultation == nil {
		return nil, errors.New("consultation service not set")
	}
	if req.Audio == nil {
		return nil, ErrEmptyAudio
	}

	transcript := s.Transcribe(ctx, req.Audio, req.Format)
	if strings.HasPrefix(transcript, FailureMarker) {
		return &VoiceResult{ConsultationResult: failureResult(transcript)}, nil
	}
	if transcript == "" {
		return &VoiceResult{ConsultationResult: failureResult(EmptyTranscriptMessage)}, nil
	}

	res, err := s.consultation.Consult(ctx, ConsultationRequest{
		User:      req.User,
		Operation: models.OperationPractice,
		Text:      transcript,
		Preamble:  VoicePreamble(transcript),
	})
	if err != nil {
		return nil, err
	}
	return &VoiceResult{Transcript: transcript, ConsultationResult: res}, nil
}

// VoicePreamble introduces an answer to a recognized voice question
func VoicePreamble(transcript string) string {
	return fmt.Sprintf("🎤 <b>Распознанный текст:</b> \"%s\"\n\n📋 <b>АНАЛИЗ ВАШЕЙ СИТУАЦИИ:</b>\n\n", transcript)
}

func failureResult(message string) *ConsultationResult {
	return &ConsultationResult{
		Parts:    []string{message},
		Domain:   models.DomainGeneral,
		Degraded: true,
		Reason:   message,
	}
}

// Speak renders an answer as Ogg/Opus audio
func (s *VoiceService) Speak(ctx context.Context, text string) ([]byte, error) {
	if s.synthesizer == nil {
		return nil, ErrSynthesizerNotSet
	}
	speech := legal.SpeechText(text, s.maxSpeech)
	if speech == "" {
		return nil, ErrNothingToSay
	}

	rc, err := s.synthesizer.Synthesize(ctx, speech)
	if err != nil {
		s.logger(ctx).Error("Speech synthesis failed", "error", err)
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer rc.Close()

	audio, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized speech: %w", err)
	}
	s.logger(ctx).Info("Speech synthesized", "chars", len([]rune(speech)), "bytes", len(audio))
	return audio, nil
}
