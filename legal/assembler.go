package legal

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"praktikasud-backend/models"
)

// Footer is appended to every answer.
const Footer = "\n\n---\n\n❓ <b>Не нашли ответа? Возникли вопросы?</b>\n🆓 <b>Бесплатная юридическая консультация</b> @ZachitaPrava02"

const citationHeader = "\n\n📋 <b>ПРИМЕНИМЫЕ СТАТЬИ ЗАКОНОВ:</b>"

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders an amount with comma thousands separators, e.g. 2,000,000.
func FormatAmount(n int64) string {
	return amountPrinter.Sprintf("%d", n)
}

// CitationBlock renders the statute block for a bankruptcy context, or "".
func CitationBlock(bc models.BankruptcyContext) string {
	if !bc.HasProcedure() {
		return ""
	}

	var b strings.Builder
	b.WriteString(citationHeader)
	switch bc.Procedure {
	case models.ProcedureExtrajudicial:
		b.WriteString("\n• <b>Федеральный закон о банкротстве:</b> ст. 223.1 (Внесудебное банкротство граждан), ст. 223.2 (Условия внесудебного банкротства), ст. 223.3 (Процедура внесудебного банкротства)")
		writeAmount(&b, "Применимо для суммы", bc.DebtAmount)
		b.WriteString("\n• <b>Диапазон:</b> от 25 000 до 1 000 000 рублей")
	case models.ProcedureJudicial:
		b.WriteString("\n• <b>Федеральный закон о банкротстве:</b> ст. 213.3 (Условия признания банкротом), ст. 213.4 (Заявление о признании банкротом), ст. 213.5 (Рассмотрение заявления)")
		b.WriteString("\n• <b>Арбитражный процессуальный кодекс РФ:</b> ст. 223 (Рассмотрение дел о банкротстве)")
		writeAmount(&b, "Применимо для суммы", bc.DebtAmount)
		b.WriteString("\n• <b>Минимум:</b> 500 000 рублей")
	case models.ProcedureInsufficientAmount:
		b.WriteString("\n• <b>⚠️ ВНИМАНИЕ:</b> Сумма долга недостаточна для банкротства")
		b.WriteString("\n• <b>Минимальная сумма:</b> 25 000 рублей")
		b.WriteString("\n• <b>Рекомендуется:</b> Рассмотреть иные способы урегулирования")
	case models.ProcedureOptional:
		b.WriteString("\n• <b>Федеральный закон о банкротстве:</b> ст. 223.1 (Внесудебное банкротство - при особых условиях), ст. 213.3 (Судебное банкротство - общий порядок)")
		writeAmount(&b, "Сумма долга", bc.DebtAmount)
		b.WriteString("\n• <b>Возможны оба варианта:</b> внесудебное и судебное")
	}
	return b.String()
}

func writeAmount(b *strings.Builder, label string, amount *int64) {
	if amount == nil {
		return
	}
	b.WriteString("\n• <b>")
	b.WriteString(label)
	b.WriteString(":</b> ")
	b.WriteString(FormatAmount(*amount))
	b.WriteString(" рублей")
}

// Assemble appends the citation block (for bankruptcy procedures) and the footer.
func Assemble(output string, bc models.BankruptcyContext) string {
	return output + CitationBlock(bc) + Footer
}
