package legal

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxChunkLength leaves headroom under the ~4000 character chat message limit.
const MaxChunkLength = 3800

var partMarker = regexp.MustCompile(`^📄 <b>ЧАСТЬ \d+ ИЗ \d+</b>\n\n`)

// PartMarker returns the header prepended to chunk i of n.
func PartMarker(i, n int) string {
	return fmt.Sprintf("📄 <b>ЧАСТЬ %d ИЗ %d</b>\n\n", i, n)
}

// StripPartMarker removes a part header added by Split, if any.
func StripPartMarker(chunk string) string {
	return partMarker.ReplaceAllString(chunk, "")
}

// Split breaks text into chunks of at most limit characters, preferring line
// boundaries. Lines longer than limit are cut at fixed offsets. The result
// always holds at least one chunk.
func Split(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxChunkLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var current strings.Builder
	currentLen := 0
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			parts = append(parts, s)
		}
		current.Reset()
		currentLen = 0
	}

	for _, line := range strings.Split(text, "\n") {
		lineLen := utf8.RuneCountInString(line)
		if currentLen+lineLen+1 <= limit {
			current.WriteString(line)
			current.WriteByte('\n')
			currentLen += lineLen + 1
			continue
		}

		flush()
		if lineLen > limit {
			runes := []rune(line)
			for len(runes) > 0 {
				end := min(limit, len(runes))
				parts = append(parts, string(runes[:end]))
				runes = runes[end:]
			}
			continue
		}
		current.WriteString(line)
		current.WriteByte('\n')
		currentLen = lineLen + 1
	}
	flush()

	if len(parts) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	if len(parts) > 1 {
		for i := range parts {
			parts[i] = PartMarker(i+1, len(parts)) + parts[i]
		}
	}
	return parts
}
