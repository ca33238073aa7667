package legal

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSpeechText(t *testing.T) {
	t.Run("Should strip markup, symbols and technical lines", func(t *testing.T) {
		in := "📋 <b>ВАШИ ПРАВА:</b> восстановление на работе\n" +
			"Источник: consultant.ru/document/123\n" +
			"ок\n" +
			"✅ Обратитесь в трудовую инспекцию в течение месяца."
		got := SpeechText(in, 1000)
		assert.Equal(t, "ВАШИ ПРАВА: восстановление на работе Обратитесь в трудовую инспекцию в течение месяца.", got)
	})

	t.Run("Should cut at the last sentence end past the middle", func(t *testing.T) {
		in := strings.Repeat("Первое предложение ответа. ", 10)
		got := SpeechText(in, 100)
		assert.True(t, strings.HasSuffix(got, "."))
		assert.LessOrEqual(t, utf8.RuneCountInString(got), 100)
	})

	t.Run("Should add an ellipsis when no sentence end is close", func(t *testing.T) {
		in := strings.Repeat("слово ", 50)
		got := SpeechText(in, 40)
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("Should return empty text for markup only", func(t *testing.T) {
		assert.Empty(t, SpeechText("<b></b>\n📄", 100))
	})
}
