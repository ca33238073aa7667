package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"

	"praktikasud-backend/logger"
)

// Format is a supported document format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatTXT  Format = "txt"
)

// SupportedFormats lists accepted formats in display order
var SupportedFormats = []Format{FormatPDF, FormatDOCX, FormatTXT}

const DefaultMaxSize = 10 * 1024 * 1024

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrFileTooLarge      = errors.New("document exceeds size limit")
	ErrContentMismatch   = errors.New("document content does not match its extension")
	ErrNoText            = errors.New("document contains no text")
)

// Extractor validates uploaded documents and pulls plain text out of them
type Extractor struct {
	maxSize int64
	log     logger.Logger
}

// Option configures an Extractor
type Option func(*Extractor)

// WithMaxSize sets the size limit in bytes
func WithMaxSize(n int64) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxSize = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

// New creates a new Extractor
func New(opts ...Option) *Extractor {
	e := &Extractor{maxSize: DefaultMaxSize, log: logger.FromContext(context.Background())}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MaxSize returns the configured size limit in bytes
func (e *Extractor) MaxSize() int64 {
	return e.maxSize
}

// FormatOf returns the format implied by the file extension
func FormatOf(filename string) (Format, error) {
	ext := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), "."))
	for _, f := range SupportedFormats {
		if f == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// DetectMIME sniffs the content type of the leading bytes
func DetectMIME(head []byte) string {
	if len(head) == 0 {
		return "application/octet-stream"
	}
	mt := http.DetectContentType(head)
	if mt != "application/octet-stream" {
		return mt
	}
	return mimetype.Detect(head).String()
}

// Validate checks extension, size and sniffed content type
func (e *Extractor) Validate(filename string, data []byte) (Format, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > e.maxSize {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}
	if len(data) == 0 {
		return "", ErrNoText
	}
	mt := DetectMIME(data)
	if !matchesFormat(format, mt) {
		return "", fmt.Errorf("%w: %s detected as %s", ErrContentMismatch, format, mt)
	}
	return format, nil
}

func matchesFormat(f Format, mime string) bool {
	switch f {
	case FormatPDF:
		return strings.HasPrefix(mime, "application/pdf")
	case FormatDOCX:
		return strings.HasPrefix(mime, "application/zip") ||
			strings.HasPrefix(mime, "application/vnd.openxmlformats-officedocument")
	case FormatTXT:
		return strings.HasPrefix(mime, "text/")
	default:
		return false
	}
}

// Extract returns the trimmed text of a validated document
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	format, err := e.Validate(filename, data)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(data)
	case FormatDOCX:
		text, err = extractDOCX(data)
	case FormatTXT:
		text, err = decodeText(data)
	}
	if err != nil {
		e.log.Error("Failed to extract document text", "file", filename, "format", format, "error", err)
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	e.log.Debug("Extracted document text", "file", filename, "chars", utf8.RuneCountInString(text))
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	buf := &bytes.Buffer{}
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}
	return buf.String(), nil
}

var legacyEncodings = []*charmap.Charmap{charmap.Windows1251, charmap.CodePage866, charmap.ISO8859_1}

// decodeText tries UTF-8, then Windows-1251, CP866 and Latin-1
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, cm := range legacyEncodings {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			continue
		}
		if bytes.ContainsRune(out, utf8.RuneError) {
			continue
		}
		return string(out), nil
	}
	return "", errors.New("failed to decode text with any supported encoding")
}
