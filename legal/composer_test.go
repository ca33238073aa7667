package legal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"praktikasud-backend/models"
)

func TestCompose(t *testing.T) {
	enrichment := models.EnrichmentResult{Body: KnowledgeHeader + "\n\nСтатья 394 ТК РФ", Source: models.EnrichmentSuccess}

	t.Run("Should use the six-section practice template", func(t *testing.T) {
		p := Compose(models.OperationPractice, "Уволили без приказа, хочу восстановиться", models.EnrichmentResult{})
		assert.Equal(t, models.OperationPractice, p.Operation)
		assert.Contains(t, p.User, "ОПИСАНИЕ СИТУАЦИИ:\nУволили без приказа, хочу восстановиться")
		assert.Contains(t, p.User, "6. РЕЗУЛЬТАТ (что получите)")
		assert.Contains(t, p.User, "1. НЕ ССЫЛАЙТЕСЬ на законы, статьи и кодексы")
		assert.NotContains(t, p.System, "СОХРАНИТЕ ВСЕ ДЕТАЛИ")
	})

	t.Run("Should append enrichment with the preserve instruction", func(t *testing.T) {
		p := Compose(models.OperationPractice, "вопрос", enrichment)
		assert.True(t, strings.HasSuffix(p.System, "\n\n"+enrichment.Body+"\n\n🎯 СОХРАНИТЕ ВСЕ ДЕТАЛИ, СТАТЬИ И ССЫЛКИ ИЗ ИНФОРМАЦИИ ВЫШЕ!"))
	})

	t.Run("Should switch to the bankruptcy template for debt questions", func(t *testing.T) {
		p := Compose(models.OperationPractice, "банкротство, долг 2000000 рублей", models.EnrichmentResult{})
		assert.Contains(t, p.User, "ЗАДАЧА: Дать конкретные практические советы по банкротству")
		assert.Contains(t, p.User, "Обнаружен контекст банкротства: judicial")
		assert.Contains(t, p.User, "Сумма долга: 2,000,000 рублей")
		assert.Contains(t, p.User, "Для сумм от 1 млн рублей: рекомендуйте СУДЕБНОЕ банкротство")
		assert.NotContains(t, p.User, "ФОРМАТ ОТВЕТА")
	})

	t.Run("Should keep the complaint template for debt documents", func(t *testing.T) {
		p := Compose(models.OperationComplaint, "решение суда о взыскании долга", enrichment)
		assert.Contains(t, p.User, "СТРУКТУРА ЖАЛОБЫ:")
		assert.Contains(t, p.User, "6. ДОКУМЕНТЫ (список приложений)")
		assert.Contains(t, p.System, "ДЛЯ СОСТАВЛЕНИЯ ЖАЛОБЫ!")
	})

	t.Run("Should build the four-section check template", func(t *testing.T) {
		p := Compose(models.OperationCheck, "договор аренды", enrichment)
		assert.Contains(t, p.User, "4. ПОСЛЕДСТВИЯ (что может произойти)")
		assert.Contains(t, p.System, "ДЛЯ ПРОВЕРКИ ДОКУМЕНТА!")
	})

	t.Run("Should build a free-form constitutional prompt", func(t *testing.T) {
		p := Compose(models.OperationConstitutional, "Право на митинги", models.EnrichmentResult{})
		assert.Equal(t, "ВОПРОС: Право на митинги\n\nДайте развернутый анализ вопроса на основе актуальной информации из интернета.", p.User)
	})

	t.Run("Should fall back to practice for unknown operations", func(t *testing.T) {
		p := Compose("unknown", "вопрос", models.EnrichmentResult{})
		assert.Equal(t, models.OperationPractice, p.Operation)
	})
}

func TestDegradedAnswers(t *testing.T) {
	t.Run("Should provide a complete answer per operation", func(t *testing.T) {
		seen := map[string]bool{}
		for _, op := range models.Operations {
			answer := DegradedAnswer(op, "вопрос")
			assert.True(t, strings.HasPrefix(answer, "❌ <b>Превышена квота OpenAI API</b>"), op)
			assert.False(t, seen[answer], op)
			seen[answer] = true
			assert.NotEmpty(t, Apology(op))
		}
	})

	t.Run("Should return the labor dispute example for practice", func(t *testing.T) {
		answer := DegradedAnswer(models.OperationPractice, "любой вопрос")
		assert.Contains(t, answer, "<b>Увольнение без приказа</b> - серьезное нарушение трудового законодательства.")
		assert.Contains(t, answer, "• Определение ВС РФ № 18-КГ20-17")
	})

	t.Run("Should quote the question in the constitutional example", func(t *testing.T) {
		assert.Contains(t, DegradedAnswer(models.OperationConstitutional, "Право на митинги"), `"Право на митинги"`)
	})
}
