package legal

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longText(lines int) string {
	out := make([]string, lines)
	for i := range out {
		out[i] = fmt.Sprintf("строка номер %03d с текстом ответа", i)
	}
	return strings.Join(out, "\n")
}

func TestSplit(t *testing.T) {
	t.Run("Should return short text unchanged", func(t *testing.T) {
		text := "  короткий ответ \n"
		assert.Equal(t, []string{text}, Split(text, 100))
	})

	t.Run("Should break at line boundaries and mark parts", func(t *testing.T) {
		text := longText(200)
		const limit = 500
		chunks := Split(text, limit)
		require.Greater(t, len(chunks), 1)

		bodies := make([]string, len(chunks))
		for i, c := range chunks {
			marker := PartMarker(i+1, len(chunks))
			assert.True(t, strings.HasPrefix(c, marker))
			assert.LessOrEqual(t, utf8.RuneCountInString(c), limit+utf8.RuneCountInString(marker))
			bodies[i] = StripPartMarker(c)
			assert.LessOrEqual(t, utf8.RuneCountInString(bodies[i]), limit)
		}
		assert.Equal(t, text, strings.Join(bodies, "\n"))
	})

	t.Run("Should hard-cut lines longer than the limit", func(t *testing.T) {
		long := strings.Repeat("я", 1050)
		text := "заголовок\n" + long + "\nхвост"
		chunks := Split(text, 500)
		require.Len(t, chunks, 5)

		bodies := make([]string, len(chunks))
		for i, c := range chunks {
			bodies[i] = StripPartMarker(c)
		}
		assert.Equal(t, "заголовок", bodies[0])
		assert.Equal(t, strings.Repeat("я", 500), bodies[1])
		assert.Equal(t, strings.Repeat("я", 500), bodies[2])
		assert.Equal(t, strings.Repeat("я", 50), bodies[3])
		assert.Equal(t, "хвост", bodies[4])
		assert.Equal(t, long, bodies[1]+bodies[2]+bodies[3])
	})

	t.Run("Should return one chunk for long whitespace-only text", func(t *testing.T) {
		parts := Split(strings.Repeat("\n", 4000), MaxChunkLength)
		require.Len(t, parts, 1)
		assert.Empty(t, parts[0])
	})

	t.Run("Should count characters rather than bytes", func(t *testing.T) {
		text := strings.Repeat("ж", MaxChunkLength)
		assert.Len(t, Split(text, MaxChunkLength), 1)
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		text := Assemble(longText(400), EvaluateBankruptcy("долг 2 млн рублей"))
		assert.Equal(t, Split(text, MaxChunkLength), Split(text, MaxChunkLength))
	})
}
