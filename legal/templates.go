package legal

import (
	"fmt"

	"praktikasud-backend/models"
)

// operationTemplate holds the fixed texts of one consultation operation.
type operationTemplate struct {
	system    string
	directive string
	user      func(payload string) string
	apology   string
	degraded  func(query string) string
}

const quotaHeader = "❌ <b>Превышена квота OpenAI API</b>\n\nК сожалению, на данный момент исчерпана квота для запросов к ИИ.\n\n"

const commonSystemRules = `
ОБЩИЕ ПРАВИЛА:
- Отвечайте на русском языке, простыми словами
- Не ссылайтесь на номера статей и кодексов в тексте ответа: ссылки добавляются отдельно
- Называйте конкретные суммы, сроки, органы и адреса обращения
- Не выдумывайте факты, которых нет в описании пользователя
- Используйте HTML-разметку <b> для заголовков разделов`

var templates = map[models.OperationKind]operationTemplate{
	models.OperationPractice: {
		system: `Вы - опытный практикующий юрист бота «Практика.Суд». Вы анализируете жизненные ситуации граждан и даете конкретные практические советы на основе российской судебной практики.` + commonSystemRules,
		directive: "🎯 СОХРАНИТЕ ВСЕ ДЕТАЛИ, СТАТЬИ И ССЫЛКИ ИЗ ИНФОРМАЦИИ ВЫШЕ!",
		user:      practiceUserPrompt,
		apology:   "Извините, произошла ошибка при анализе ситуации. Попробуйте еще раз позже.",
		degraded:  func(string) string { return practiceDegraded },
	},
	models.OperationComplaint: {
		system: `Вы - опытный судебный юрист бота «Практика.Суд». Вы составляете апелляционные и кассационные жалобы на решения судов общей юрисдикции и арбитражных судов.` + commonSystemRules,
		directive: "🎯 ИСПОЛЬЗУЙТЕ АКТУАЛЬНУЮ ИНФОРМАЦИЮ ИЗ ИНТЕРНЕТА ДЛЯ СОСТАВЛЕНИЯ ЖАЛОБЫ!",
		user:      complaintUserPrompt,
		apology:   "Извините, произошла ошибка при составлении жалобы. Попробуйте еще раз позже.",
		degraded:  func(string) string { return complaintDegraded },
	},
	models.OperationCheck: {
		system: `Вы - внимательный юрист-аналитик бота «Практика.Суд». Вы проверяете договоры, заявления и иные документы на ошибки, пробелы и риски для клиента.` + commonSystemRules,
		directive: "🎯 ИСПОЛЬЗУЙТЕ АКТУАЛЬНУЮ ИНФОРМАЦИЮ ИЗ ИНТЕРНЕТА ДЛЯ ПРОВЕРКИ ДОКУМЕНТА!",
		user:      checkUserPrompt,
		apology:   "Извините, произошла ошибка при проверке документа. Попробуйте еще раз позже.",
		degraded:  func(string) string { return checkDegraded },
	},
	models.OperationConstitutional: {
		system: `Вы - эксперт по конституционному праву Российской Федерации. Вы даете развернутый анализ вопросов о правах и свободах человека, устройстве государственной власти и практике Конституционного Суда РФ. Отвечайте на русском языке, последовательно и по существу.`,
		directive: "🎯 ИСПОЛЬЗУЙТЕ АКТУАЛЬНУЮ ИНФОРМАЦИЮ ИЗ ИНТЕРНЕТА ДЛЯ КОНСТИТУЦИОННОГО АНАЛИЗА!",
		user: func(payload string) string {
			return "ВОПРОС: " + payload + "\n\nДайте развернутый анализ вопроса на основе актуальной информации из интернета."
		},
		apology:  "Извините, произошла ошибка при анализе конституционного вопроса. Попробуйте еще раз позже.",
		degraded: constitutionalDegraded,
	},
}

func templateFor(op models.OperationKind) operationTemplate {
	if t, ok := templates[op]; ok {
		return t
	}
	return templates[models.OperationPractice]
}

// Apology returns the one-line apology for an operation.
func Apology(op models.OperationKind) string {
	return templateFor(op).apology
}

// DegradedAnswer returns the worked example used when the completion quota is exhausted.
func DegradedAnswer(op models.OperationKind, query string) string {
	return templateFor(op).degraded(query)
}

func practiceUserPrompt(payload string) string {
	return `ЗАДАЧА: Дать конкретные практические советы

ОПИСАНИЕ СИТУАЦИИ:
` + payload + `

ТРЕБОВАНИЯ К ОТВЕТУ:
1. НЕ ССЫЛАЙТЕСЬ на законы, статьи и кодексы
2. ГОВОРИТЕ простым языком
3. ДАВАЙТЕ конкретные пошаговые действия
4. УКАЗЫВАЙТЕ конкретные суммы, сроки, места
5. ФОКУСИРУЙТЕСЬ на том, что делать прямо сейчас
6. НЕ ИСПОЛЬЗУЙТЕ юридические термины без объяснения
7. БУДЬТЕ максимально конкретными

ФОРМАТ ОТВЕТА:
1. ЧТО ПРОИЗОШЛО (1-2 предложения)
2. ВАШИ ПРАВА (простыми словами)
3. КОНКРЕТНЫЕ ДЕЙСТВИЯ (пошагово что делать)
4. ДОКУМЕНТЫ (что собрать)
5. СРОКИ (когда что делать)
6. РЕЗУЛЬТАТ (что получите)`
}

func bankruptcyUserPrompt(payload string, bc models.BankruptcyContext) string {
	detected := "Банкротство не обнаружено"
	if bc.IsBankruptcy {
		detected = "Обнаружен контекст банкротства: " + string(bc.Procedure)
	}
	amount := ""
	if bc.DebtAmount != nil {
		amount = "Сумма долга: " + FormatAmount(*bc.DebtAmount) + " рублей"
	}

	return fmt.Sprintf(`ЗАДАЧА: Дать конкретные практические советы по банкротству

ОПИСАНИЕ СИТУАЦИИ:
%s

КОНТЕКСТ БАНКРОТСТВА:
%s
%s

ОСОБЕННОСТИ ДЛЯ БАНКРОТСТВА:
- Для сумм до 25 тыс рублей: банкротство НЕВОЗМОЖНО
- Для сумм от 25 тыс до 500 тыс рублей: рекомендуйте ВНЕСУДЕБНОЕ банкротство
- Для сумм от 500 тыс до 1 млн рублей: возможны ВНЕСУДЕБНОЕ и СУДЕБНОЕ банкротство
- Для сумм от 1 млн рублей: рекомендуйте СУДЕБНОЕ банкротство

ТРЕБОВАНИЯ К ОТВЕТУ:
1. НЕ ССЫЛАЙТЕСЬ на законы, статьи и кодексы
2. ГОВОРИТЕ простым языком
3. ДАВАЙТЕ конкретные пошаговые действия
4. УКАЗЫВАЙТЕ конкретные суммы, сроки, места
5. ФОКУСИРУЙТЕСЬ на том, что делать прямо сейчас`, payload, detected, amount)
}

func complaintUserPrompt(payload string) string {
	return `ЗАДАЧА: Составить жалобу на решение суда

РЕШЕНИЕ СУДА:
` + payload + `

ТРЕБОВАНИЯ К ЖАЛОБЕ:
1. НЕ ССЫЛАЙТЕСЬ на законы, статьи и кодексы
2. ИСПОЛЬЗУЙТЕ простые формулировки
3. ФОКУСИРУЙТЕСЬ на фактах и нарушениях
4. ДАВАЙТЕ готовый текст жалобы
5. БУДЬТЕ конкретными в каждом пункте
6. НЕ ИСПОЛЬЗУЙТЕ сложные юридические термины

СТРУКТУРА ЖАЛОБЫ:
1. КОМУ (название суда)
2. ОТ КОГО (ваши данные)
3. ЧТО СЛУЧИЛОСЬ (факты из решения)
4. ПОЧЕМУ ЭТО НЕПРАВИЛЬНО (конкретные нарушения)
5. ЧТО ТРЕБУЕТЕ (отменить решение, принять новое)
6. ДОКУМЕНТЫ (список приложений)

ПРИМЕРЫ ХОРОШЕГО ТЕКСТА:
✅ "Суд неправильно оценил доказательства"
✅ "Меня не выслушали должным образом"
✅ "Требую отменить решение"
✅ "Прошу принять новое решение в мою пользу"

ЗАПРЕЩЕНО:
- Ссылки на законы и статьи
- Сложные юридические термины
- Общие формулировки
- Длинные предложения

ДАЙТЕ ГОТОВЫЙ ТЕКСТ ЖАЛОБЫ!`
}

func checkUserPrompt(payload string) string {
	return `ЗАДАЧА: Проверить документ на соответствие законам

ДОКУМЕНТ ДЛЯ ПРОВЕРКИ:
` + payload + `

ТРЕБОВАНИЯ К ПРОВЕРКЕ:
1. НЕ ССЫЛАЙТЕСЬ на законы, статьи и кодексы
2. ИСПОЛЬЗУЙТЕ простые формулировки
3. ФОКУСИРУЙТЕСЬ на конкретных нарушениях
4. ДАВАЙТЕ практические рекомендации
5. БУДЬТЕ конкретными в каждом пункте
6. НЕ ИСПОЛЬЗУЙТЕ сложные юридические термины

СТРУКТУРА ПРОВЕРКИ:
1. ЧТО ПРОВЕРЯЕМ (краткое описание документа)
2. НАЙДЕННЫЕ ПРОБЛЕМЫ (конкретные нарушения)
3. РЕКОМЕНДАЦИИ (как исправить)
4. ПОСЛЕДСТВИЯ (что может произойти)

ПРИМЕРЫ ХОРОШЕГО АНАЛИЗА:
✅ "В договоре отсутствует важное условие"
✅ "Эта формулировка может быть неправильно понята"
✅ "Добавьте пункт о..."
✅ "Без этого условия вы рискуете..."

ЗАПРЕЩЕНО:
- Ссылки на законы и статьи
- Сложные юридические термины
- Общие формулировки
- Длинные предложения

ДАЙТЕ КОНКРЕТНЫЕ РЕКОМЕНДАЦИИ!`
}

const practiceDegraded = quotaHeader + `📋 <b>Анализ вашей ситуации вручную:</b>

<b>Увольнение без приказа</b> - серьезное нарушение трудового законодательства.

<b>Ваши права:</b>
• Восстановление на работе (ст. 394 ТК РФ)
• Оплата вынужденного прогула
• Компенсация морального вреда

<b>Судебная практика:</b>
• Определение ВС РФ № 18-КГ20-17
• Постановление Пленума ВС РФ № 2

<b>Действия:</b>
1. Требуйте письменное объяснение причин увольнения
2. Собирайте доказательства отсутствия приказа
3. Обращайтесь в суд в течение 1 месяца
4. Подавайте иск о восстановлении на работе

<b>Документы:</b> трудовая книжка, справки о доходах, свидетельские показания.`

const complaintDegraded = quotaHeader + `📋 <b>Образец апелляционной жалобы:</b>

<b>КОМУ:</b> В судебную коллегию по гражданским делам областного суда (через суд, вынесший решение)

<b>ОТ КОГО:</b> ФИО, адрес, телефон заявителя

<b>ЧТО СЛУЧИЛОСЬ:</b>
Решением суда от [дата] по делу № [номер] мне отказано в удовлетворении требований.

<b>ПОЧЕМУ ЭТО НЕПРАВИЛЬНО:</b>
• Суд не оценил представленные мной доказательства
• Суд не вызвал свидетелей, о которых я просил
• Выводы суда не соответствуют обстоятельствам дела

<b>ЧТО ТРЕБУЮ:</b>
1. Отменить решение суда от [дата] полностью
2. Принять по делу новое решение и удовлетворить мои требования

<b>ДОКУМЕНТЫ:</b> копия жалобы для других участников, квитанция об оплате госпошлины, копия решения суда.

<b>Срок подачи:</b> один месяц со дня изготовления решения в окончательной форме.`

const checkDegraded = quotaHeader + `📋 <b>Базовая проверка документа вручную:</b>

<b>ЧТО ПРОВЕРИТЬ В ПЕРВУЮ ОЧЕРЕДЬ:</b>
• Полные данные сторон: ФИО, паспорт, адреса, реквизиты
• Предмет документа: что именно передается или выполняется
• Цена и порядок оплаты: сумма цифрами и прописью, сроки платежей
• Сроки исполнения и ответственность за их нарушение
• Порядок расторжения и разрешения споров
• Подписи сторон и дата составления

<b>ЧАСТЫЕ ПРОБЛЕМЫ:</b>
• Размытые формулировки без конкретных сроков
• Односторонние штрафы только для одной стороны
• Отсутствие порядка приемки работ или товара

<b>РЕКОМЕНДАЦИИ:</b>
1. Не подписывайте документ с пустыми полями
2. Добавьте конкретные даты вместо слов «в разумный срок»
3. Сохраните подписанный экземпляр и переписку

💡 <b>Для полной проверки обратитесь к практикующему юристу.</b>`

func constitutionalDegraded(query string) string {
	return quotaHeader + `📋 <b>Базовая информация по вашему вопросу:</b> "` + query + `"

<b>ОСНОВЫ КОНСТИТУЦИОННОГО ПРАВА РФ:</b>

• <b>Конституция РФ</b> - высший закон государства
• <b>Права и свободы человека</b> - высшая ценность (ст. 2)
• <b>Федеративное устройство</b> - основа государственности
• <b>Разделение властей</b> - принцип организации власти
• <b>Верховенство права</b> - основополагающий принцип

<b>ВАЖНЫЕ ОРГАНЫ:</b>
• <b>Конституционный Суд РФ</b> - орган конституционного контроля
• <b>Президент РФ</b> - глава государства
• <b>Федеральное Собрание</b> - парламент РФ
• <b>Правительство РФ</b> - исполнительная власть

<b>РЕКОМЕНДАЦИИ:</b>
• Изучите текст Конституции РФ
• Ознакомьтесь с решениями КС РФ
• Обратитесь к специалисту по конституционному праву

💡 <b>Для точной консультации обратитесь к практикующему юристу.</b>`
}
