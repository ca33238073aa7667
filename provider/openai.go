package provider

import (
	"context"
	"fmt"
	"io"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

const (
	TranscriptionLanguage = "ru"
	DefaultTTSVoice       = "alloy"

	// go-openai drops a zero temperature via omitempty
	greedyTemperature = math.SmallestNonzeroFloat32
)

// OpenAIClient provides chat completion, speech recognition and speech synthesis
type OpenAIClient struct {
	client *openai.Client
	model  string
	voice  openai.SpeechVoice
}

// OpenAIOption configures an OpenAIClient
type OpenAIOption func(*openai.ClientConfig, *OpenAIClient)

// OpenAIWithBaseURL points the client at a different API endpoint
func OpenAIWithBaseURL(url string) OpenAIOption {
	return func(cfg *openai.ClientConfig, _ *OpenAIClient) {
		if url != "" {
			cfg.BaseURL = url
		}
	}
}

// OpenAIWithVoice sets the synthesis voice
func OpenAIWithVoice(voice string) OpenAIOption {
	return func(_ *openai.ClientConfig, c *OpenAIClient) {
		if voice != "" {
			c.voice = openai.SpeechVoice(voice)
		}
	}
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string, opts ...OpenAIOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	c := &OpenAIClient{model: model, voice: openai.VoiceAlloy}
	for _, opt := range opts {
		opt(&cfg, c)
	}
	c.client = openai.NewClientWithConfig(cfg)
	return c, nil
}

// Complete runs a deterministic system+user chat completion
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: greedyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe converts a Russian voice message into text
func (c *OpenAIClient) Transcribe(ctx context.Context, audio io.Reader, format string) (string, error) {
	if format == "" {
		format = "ogg"
	}
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: "voice_message." + format,
		Language: TranscriptionLanguage,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}

// Synthesize renders text as Opus audio in an Ogg container
func (c *OpenAIClient) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	resp, err := c.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1HD,
		Input:          text,
		Voice:          c.voice,
		ResponseFormat: openai.SpeechResponseFormatOpus,
		Speed:          1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return resp, nil
}
