package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const docxBody = "word/document.xml"

// extractDOCX reads body paragraphs first, then table rows with cells separated by spaces
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBody {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("docx has no document body")
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open docx body: %w", err)
	}
	defer rc.Close()

	return walkDocument(xml.NewDecoder(rc))
}

func walkDocument(dec *xml.Decoder) (string, error) {
	var (
		paragraphs strings.Builder
		tables     strings.Builder
		para       strings.Builder
		cell       []string
		tableDepth int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse docx body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				para.Reset()
			case "t":
				inText = true
			case "tab":
				para.WriteByte('\t')
			case "br":
				para.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "t":
				inText = false
			case "p":
				if tableDepth > 0 {
					cell = append(cell, para.String())
				} else {
					paragraphs.WriteString(para.String())
					paragraphs.WriteByte('\n')
				}
				para.Reset()
			case "tc":
				tables.WriteString(strings.Join(cell, "\n"))
				tables.WriteByte(' ')
				cell = cell[:0]
			case "tr":
				tables.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	return paragraphs.String() + tables.String(), nil
}
