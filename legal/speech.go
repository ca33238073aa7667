package legal

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxSpeechLength is the longest text sent to speech synthesis.
const MaxSpeechLength = 4000

var (
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
	speechSymbols = regexp.MustCompile(`📄|📋|🔍|⚖️|⚖|🏛️|🏛|📊|📎|📖|✅|❌|⚠️|⚠|💡|🎯|🔗|📥|📱|🎤|\x{FE0F}`)
	whitespace    = regexp.MustCompile(`\s+`)
)

var technicalMarkers = []string{
	"источник:", "ссылка:", "релевантность:", "найдено:",
	"документ предоставлен", "консультантплюс", "===",
}

// SpeechText prepares an answer for speech synthesis: markup, symbols and
// technical lines are removed and the result is cut to maxLen characters,
// at a sentence end when one lies past the middle.
func SpeechText(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = MaxSpeechLength
	}
	text = htmlTag.ReplaceAllString(text, "")
	text = speechSymbols.ReplaceAllString(text, "")

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= 10 || isTechnicalLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = whitespace.ReplaceAllString(strings.Join(kept, " "), " ")

	runes := []rune(text)
	if len(runes) > maxLen {
		truncated := runes[:maxLen]
		end := -1
		for i := len(truncated) - 1; i >= 0; i-- {
			if r := truncated[i]; r == '.' || r == '!' || r == '?' {
				end = i
				break
			}
		}
		if end > maxLen/2 {
			text = string(truncated[:end+1])
		} else {
			text = string(truncated) + "..."
		}
	}
	return strings.TrimSpace(text)
}

func isTechnicalLine(line string) bool {
	lower := strings.ToLower(line)
	for _, m := range technicalMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
