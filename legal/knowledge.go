package legal

import (
	"fmt"
	"regexp"
	"strings"

	"praktikasud-backend/models"
)

// KnowledgeHeader opens every knowledge-provider block.
const KnowledgeHeader = "🔍 АКТУАЛЬНАЯ ИНФОРМАЦИЯ ИЗ ИНТЕРНЕТА:"

const (
	knowledgeWarningMark = "⚠️ ВАЖНО:"
	knowledgeDisclaimer  = "\n\n⚠️ ВАЖНО: Информация получена из интернета и требует проверки у практикующего юриста."
	legalSearchTerms     = " российское право законодательство РФ 2025"
)

// GenericAdvice is used in place of enrichment when the query is empty.
const GenericAdvice = "🎯 <b>ОБЩИЕ РЕКОМЕНДАЦИИ ПО ПРАВОВЫМ ВОПРОСАМ:</b>\n" +
	"• Изучите ваши права и обязанности\n" +
	"• Соберите все необходимые документы\n" +
	"• Обратитесь за консультацией к специалисту\n" +
	"• Соблюдайте установленные сроки"

// SearchDomain narrows a classified domain to the contexts the knowledge
// provider has dedicated instructions for.
func SearchDomain(d models.Domain) models.Domain {
	switch d {
	case models.DomainBankruptcy, models.DomainLabor, models.DomainCivil:
		return d
	default:
		return models.DomainGeneral
	}
}

const baseKnowledgeInstruction = `Ты - эксперт по российскому праву. Найди актуальную информацию по запросу пользователя.

ТРЕБОВАНИЯ:
1. Ищи только АКТУАЛЬНУЮ информацию на 2025 год
2. Используй только РОССИЙСКИЕ правовые источники
3. ОБЯЗАТЕЛЬНО указывай КОНКРЕТНЫЕ СТАТЬИ ЗАКОНОВ
4. ОБЯЗАТЕЛЬНО давай ССЫЛКИ НА ИСТОЧНИКИ (https://...)
5. Приводи СУДЕБНУЮ ПРАКТИКУ с номерами дел
6. Указывай КОНКРЕТНЫЕ суммы, сроки, процедуры

ПРИОРИТЕТНЫЕ ИСТОЧНИКИ:
- consultant.ru (КонсультантПлюс)
- garant.ru (Гарант)
- vsrf.ru (Верховный Суд РФ)
- ksrf.ru (Конституционный Суд РФ)
- pravo.gov.ru (Официальный интернет-портал правовой информации)
- Федеральные законы и кодексы РФ
- Постановления Пленумов ВС РФ

ОБЯЗАТЕЛЬНЫЙ ФОРМАТ ОТВЕТА:
🔍 АКТУАЛЬНАЯ ИНФОРМАЦИЯ ИЗ ИНТЕРНЕТА:

1. **КЛЮЧЕВЫЕ СТАТЬИ ЗАКОНОВ:**
   • **Статья X ТК РФ** - [описание]
   • **Статья Y ГК РФ** - [описание]
   • [другие статьи]

2. **ПОШАГОВЫЕ ДЕЙСТВИЯ:**
   • **Шаг 1:** [конкретное действие]
   • **Шаг 2:** [конкретное действие]
   • [другие шаги]

3. **СРОКИ И ДОКУМЕНТЫ:**
   • **Срок:** [точный срок]
   • **Документы:** [список документов]

4. **СУДЕБНАЯ ПРАКТИКА:**
   • **Решение ВС РФ** от [дата] № [номер]
   • [другие решения]

5. **ИСТОЧНИКИ ИНФОРМАЦИИ:**
   • https://[ссылка на источник 1]
   • https://[ссылка на источник 2]
   • [другие ссылки]

ВАЖНО: Используй **жирный текст** для заголовков и ключевых терминов. ВСЕГДА давай КОНКРЕТНЫЕ статьи законов и РЕАЛЬНЫЕ ссылки на источники!`

var knowledgeSpecializations = map[models.Domain]string{
	models.DomainBankruptcy: `

СПЕЦИАЛИЗАЦИЯ: БАНКРОТСТВО
Фокусируйся на:
- Федеральном законе 127-ФЗ "О несостоятельности (банкротстве)" 2025
- Внесудебном банкротстве (от 25 тыс до 1 млн рублей)
- Судебном банкротстве (от 500 тыс рублей)
- Актуальной практике арбитражных судов 2025 года
- Процедурах в МФЦ для внесудебного банкротства`,
	models.DomainLabor: `

СПЕЦИАЛИЗАЦИЯ: ТРУДОВОЕ ПРАВО
Фокусируйся на:
- Трудовом кодексе РФ
- Постановлениях Пленума ВС РФ по трудовым спорам
- Трудовой инспекции и её полномочиях
- Сроках обращения в суд (1 месяц для восстановления)
- Размерах компенсаций и выплат`,
	models.DomainCivil: `

СПЕЦИАЛИЗАЦИЯ: ГРАЖДАНСКОЕ ПРАВО
Фокусируйся на:
- Гражданском кодексе РФ
- Договорном праве
- Защите прав потребителей
- Возмещении ущерба
- Сроках исковой давности (3 года общий)`,
}

var searchTerms = map[models.Domain]string{
	models.DomainBankruptcy: " банкротство несостоятельность 127-ФЗ арбитражный суд",
	models.DomainLabor:      " трудовой кодекс трудовые права трудовая инспекция",
	models.DomainCivil:      " гражданский кодекс гражданские права договор",
}

// KnowledgeInstruction returns the system instruction for the knowledge provider.
func KnowledgeInstruction(d models.Domain) string {
	return baseKnowledgeInstruction + knowledgeSpecializations[SearchDomain(d)]
}

// EnhanceQuery appends legal search terms for the given domain.
func EnhanceQuery(query string, d models.Domain) string {
	return query + legalSearchTerms + searchTerms[SearchDomain(d)]
}

var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\*\*(.*?)\*\*`), "<b>$1</b>"},
	{regexp.MustCompile(`__(.*?)__`), "<b>$1</b>"},
	{regexp.MustCompile(`\*(.*?)\*`), "<i>$1</i>"},
	{regexp.MustCompile(`_(.*?)_`), "<i>$1</i>"},
}

// MarkdownToHTML converts bold and italic markdown markers to chat HTML tags.
func MarkdownToHTML(text string) string {
	for _, r := range markdownRules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

// FormatKnowledge normalizes a provider answer: HTML markup, header, disclaimer.
func FormatKnowledge(text string) string {
	text = MarkdownToHTML(text)
	if strings.Contains(text, KnowledgeHeader) {
		if !strings.Contains(text, knowledgeWarningMark) {
			text += knowledgeDisclaimer
		}
		return text
	}
	return KnowledgeHeader + "\n\n" + text + knowledgeDisclaimer
}

// KnowledgeFallback is returned when the provider had nothing to say.
func KnowledgeFallback(query string, d models.Domain) string {
	switch SearchDomain(d) {
	case models.DomainBankruptcy:
		return fmt.Sprintf(`%s

По вопросу "%s" рекомендуем:

💰 БАНКРОТСТВО ГРАЖДАН:
• От 25 тыс до 1 млн рублей - внесудебное банкротство через МФЦ
• От 500 тыс рублей - судебное банкротство в арбитражном суде
• Минимум 25 тыс рублей для любой процедуры

📋 ДОКУМЕНТЫ:
• Паспорт и справка о доходах
• Справки о задолженностях
• Перечень имущества

⚠️ Точную консультацию получите у практикующего юриста по банкротству.`, KnowledgeHeader, query)
	case models.DomainLabor:
		return fmt.Sprintf(`%s

По вопросу "%s" рекомендуем:

⚖️ ТРУДОВЫЕ ПРАВА:
• Обращение в трудовую инспекцию (бесплатно)
• Срок для восстановления на работе - 1 месяц
• Компенсация морального вреда - от 5 тыс рублей

📋 ДЕЙСТВИЯ:
• Письменное требование работодателю
• Жалоба в трудовую инспекцию
• Иск в суд при необходимости

⚠️ Точную консультацию получите у практикующего юриста по трудовому праву.`, KnowledgeHeader, query)
	default:
		return fmt.Sprintf(`%s

По вопросу "%s" рекомендуем:

📚 ИСТОЧНИКИ ПРАВА:
• КонсультантПлюс (consultant.ru)
• Гарант (garant.ru)
• Официальный портал (pravo.gov.ru)

📋 ОБЩИЕ РЕКОМЕНДАЦИИ:
• Изучите актуальное законодательство РФ
• Соберите все документы по делу
• Соблюдайте процессуальные сроки

⚠️ Для точной правовой оценки обратитесь к практикующему юристу.`, KnowledgeHeader, query)
	}
}

// KnowledgeError is returned when the provider call failed.
func KnowledgeError(query string, d models.Domain) string {
	switch SearchDomain(d) {
	case models.DomainBankruptcy:
		return `❌ ВРЕМЕННАЯ ОШИБКА ПОИСКА ПО БАНКРОТСТВУ

К сожалению, поиск актуальной информации по банкротству временно недоступен.

💰 ОБЩИЕ РЕКОМЕНДАЦИИ ПО БАНКРОТСТВУ:
• От 25 тыс до 1 млн рублей - внесудебное банкротство через МФЦ
• От 500 тыс рублей - судебное банкротство в арбитражном суде
• Минимум 25 тыс рублей для любой процедуры

🏛️ ПОЛЕЗНЫЕ РЕСУРСЫ:
• Арбитражные суды РФ (vsrf.ru)
• Официальный сайт судов общей юрисдикции
• КонсультантПлюс для изучения 127-ФЗ

📞 Бесплатная юридическая консультация: @ZachitaPrava02`
	case models.DomainLabor:
		return `❌ ВРЕМЕННАЯ ОШИБКА ПОИСКА ПО ТРУДОВОМУ ПРАВУ

К сожалению, поиск актуальной информации по трудовым вопросам временно недоступен.

👔 ОБЩИЕ РЕКОМЕНДАЦИИ ПО ТРУДОВЫМ СПОРАМ:
• Обращение в трудовую инспекцию (бесплатно)
• Срок для восстановления на работе - 1 месяц
• Компенсация морального вреда - от 5 тыс рублей

🏛️ ПОЛЕЗНЫЕ РЕСУРСЫ:
• Трудовая инспекция (git.rostrud.gov.ru)
• Трудовой кодекс РФ в КонсультантПлюс
• Практика судов по трудовым спорам

📞 Бесплатная юридическая консультация: @ZachitaPrava02`
	default:
		return fmt.Sprintf(`❌ ВРЕМЕННАЯ ОШИБКА ПОИСКА

К сожалению, поиск актуальной информации по запросу "%s" временно недоступен.

💡 РЕКОМЕНДАЦИИ:
• Обратитесь к КонсультантПлюс (consultant.ru)
• Проверьте информацию на pravo.gov.ru
• Получите консультацию практикующего юриста

📞 Бесплатная юридическая консультация: @ZachitaPrava02`, query)
	}
}
