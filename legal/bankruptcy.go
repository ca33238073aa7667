package legal

import (
	"strings"

	"praktikasud-backend/models"
)

// Debt thresholds in rubles.
const (
	MinBankruptcyDebt    int64 = 25_000
	OptionalProcedureMin int64 = 500_000
	JudicialProcedureMin int64 = 1_000_000
)

const bankruptcyLaw = `Федеральный закон от 26.10.2002 N 127-ФЗ "О несостоятельности (банкротстве)"`

var bankruptcyTriggers = []string{"банкротство", "несостоятельность", "банкрот", "долг"}

var citationBundles = map[models.ProcedureType][]string{
	models.ProcedureExtrajudicial: {
		bankruptcyLaw,
		"Статья 223.1 - Внесудебное банкротство",
		"Статья 223.2 - Условия внесудебного банкротства",
		"Статья 223.3 - Процедура внесудебного банкротства",
	},
	models.ProcedureInsufficientAmount: {
		"Сумма долга недостаточна для процедуры банкротства",
		"Минимальная сумма: 25 000 рублей",
	},
	models.ProcedureJudicial: {
		bankruptcyLaw,
		"Статья 213.3 - Условия признания банкротом",
		"Статья 213.4 - Заявление о признании банкротом",
		"Арбитражный процессуальный кодекс РФ",
	},
	models.ProcedureOptional: {
		bankruptcyLaw,
		"Возможно внесудебное банкротство (статья 223.1)",
		"Возможно судебное банкротство (статья 213.3)",
	},
}

// ProcedureFor maps a debt amount to its bankruptcy procedure.
func ProcedureFor(amount int64) models.ProcedureType {
	switch {
	case amount < MinBankruptcyDebt:
		return models.ProcedureInsufficientAmount
	case amount < OptionalProcedureMin:
		return models.ProcedureExtrajudicial
	case amount < JudicialProcedureMin:
		return models.ProcedureOptional
	default:
		return models.ProcedureJudicial
	}
}

// CitationBundle returns a copy of the citation list for a procedure.
func CitationBundle(p models.ProcedureType) []string {
	return append([]string(nil), citationBundles[p]...)
}

// IsBankruptcyQuery reports whether query mentions a bankruptcy trigger.
func IsBankruptcyQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range bankruptcyTriggers {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// EvaluateBankruptcy determines the bankruptcy procedure applicable to query.
func EvaluateBankruptcy(query string) models.BankruptcyContext {
	if !validQuery(query) {
		return models.BankruptcyContext{Procedure: models.ProcedureNone, GenericAdvice: true}
	}
	if !IsBankruptcyQuery(query) {
		return models.BankruptcyContext{Procedure: models.ProcedureNone}
	}

	bc := models.BankruptcyContext{IsBankruptcy: true, Procedure: models.ProcedureNone}
	amount, ok := ExtractAmount(query)
	if !ok {
		return bc
	}
	bc.DebtAmount = &amount
	bc.Procedure = ProcedureFor(amount)
	bc.ApplicableLaws = CitationBundle(bc.Procedure)
	return bc
}
