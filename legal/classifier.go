package legal

import (
	"strings"
	"unicode/utf8"

	"praktikasud-backend/models"
)

type domainKeywords struct {
	domain   models.Domain
	keywords []string
}

// domainTable is scanned in order; on equal counts the earlier domain wins.
var domainTable = []domainKeywords{
	{models.DomainLabor, []string{
		"увольнение", "уволи", "восстановиться", "работа", "трудовой", "зарплата",
		"заработная плата", "отпуск", "больничный", "работодатель", "сотрудник",
		"трудовая книжка", "прогул", "трудовой договор", "штраф", "премия",
		"командировка", "сверхурочные", "декрет", "отгул", "график работы",
		"выходные", "праздники", "отработка",
	}},
	{models.DomainCivil, []string{
		"договор", "сделка", "собственность", "покупка", "продажа", "аренда",
		"займ", "кредит", "залог", "наследство", "дарение", "ущерб", "компенсация",
		"страхование", "недвижимость", "автомобиль", "услуги", "подряд", "поставка",
	}},
	{models.DomainFamily, []string{
		"брак", "развод", "алименты", "дети", "опека", "усыновление", "супруг",
		"семья", "материнский капитал", "отцовство", "материнство",
	}},
	{models.DomainHousing, []string{
		"квартира", "дом", "жилье", "коммунальные услуги", "управляющая компания",
		"тсж", "капремонт", "приватизация", "выселение", "прописка", "регистрация",
	}},
	{models.DomainAdministrative, []string{
		"штраф", "гибдд", "парковка", "нарушение", "административный",
		"протокол", "постановление", "жалоба на постановление",
	}},
	{models.DomainBankruptcy, []string{
		"банкротство", "долг", "кредиторы", "должник", "несостоятельность",
		"финансовый управляющий", "конкурсная масса",
	}},
	{models.DomainCriminal, []string{
		"преступление", "уголовный", "следствие", "обвинение", "суд",
		"приговор", "адвокат", "потерпевший",
	}},
}

// validQuery reports whether q is non-blank UTF-8 text.
func validQuery(q string) bool {
	return utf8.ValidString(q) && strings.TrimSpace(q) != ""
}

// Classify maps a free-text query to a legal domain by keyword scoring.
// Each keyword counts once if it occurs in the lowercased query.
func Classify(query string) models.ClassifiedContext {
	if !validQuery(query) {
		return models.ClassifiedContext{Domain: models.DomainGeneral, LowConfidence: true}
	}

	lower := strings.ToLower(strings.TrimSpace(query))
	hits := make([]models.DomainHit, 0, len(domainTable))
	best, bestCount := models.DomainGeneral, 0
	for _, dk := range domainTable {
		count := 0
		for _, kw := range dk.keywords {
			if strings.Contains(lower, kw) {
				count++
			}
		}
		hits = append(hits, models.DomainHit{Domain: dk.domain, Count: count})
		if count > bestCount {
			best, bestCount = dk.domain, count
		}
	}

	return models.ClassifiedContext{Domain: best, Hits: hits}
}
