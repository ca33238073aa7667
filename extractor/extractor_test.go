package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"praktikasud-backend/logger"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>ДОГОВОР АРЕНДЫ</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">Арендатор обязуется </w:t></w:r><w:r><w:t>вносить плату.</w:t></w:r></w:p>
<w:tbl>
<w:tr><w:tc><w:p><w:r><w:t>Сторона</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Подпись</w:t></w:r></w:p></w:tc></w:tr>
</w:tbl>
<w:p><w:r><w:t>Конец</w:t></w:r></w:p>
</w:body>
</w:document>`

func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	w, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)
	w, err = zw.Create(docxBody)
	require.NoError(t, err)
	_, err = w.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	ex := New(WithLogger(logger.NewForTests()))

	t.Run("Should read utf-8 text files", func(t *testing.T) {
		text, err := ex.Extract(ctx, "claim.TXT", []byte("\n  Исковое заявление  \n"))
		require.NoError(t, err)
		assert.Equal(t, "Исковое заявление", text)
	})

	t.Run("Should fall back to windows-1251", func(t *testing.T) {
		raw, err := charmap.Windows1251.NewEncoder().String("Договор подряда")
		require.NoError(t, err)
		text, err := ex.Extract(ctx, "contract.txt", []byte(raw))
		require.NoError(t, err)
		assert.Equal(t, "Договор подряда", text)
	})

	t.Run("Should read paragraphs before table cells in docx", func(t *testing.T) {
		text, err := ex.Extract(ctx, "lease.docx", buildDOCX(t, documentXML))
		require.NoError(t, err)
		assert.Equal(t, "ДОГОВОР АРЕНДЫ\nАрендатор обязуется вносить плату.\nКонец\nСторона Подпись", text)
	})

	t.Run("Should report documents without text", func(t *testing.T) {
		_, err := ex.Extract(ctx, "empty.txt", []byte("   \n  "))
		assert.ErrorIs(t, err, ErrNoText)

		_, err = ex.Extract(ctx, "empty.docx", buildDOCX(t, `<w:document xmlns:w="w"><w:body/></w:document>`))
		assert.ErrorIs(t, err, ErrNoText)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should reject unsupported extensions", func(t *testing.T) {
		_, err := New().Validate("scan.jpg", []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)

		_, err = New().Validate("old.doc", []byte("data"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("Should reject oversized files", func(t *testing.T) {
		_, err := New(WithMaxSize(10)).Validate("a.txt", []byte(strings.Repeat("a", 11)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("Should reject content that does not match the extension", func(t *testing.T) {
		_, err := New().Validate("fake.pdf", []byte("plain text pretending to be pdf"))
		assert.ErrorIs(t, err, ErrContentMismatch)
	})

	t.Run("Should accept matching content", func(t *testing.T) {
		f, err := New().Validate("doc.pdf", []byte("%PDF-1.4\n%âãÏÓ\n"))
		require.NoError(t, err)
		assert.Equal(t, FormatPDF, f)
	})
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "application/octet-stream", DetectMIME(nil))
	assert.True(t, strings.HasPrefix(DetectMIME([]byte("hello")), "text/plain"))
	assert.Equal(t, "application/pdf", DetectMIME([]byte("%PDF-1.7")))
}
