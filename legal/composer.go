package legal

import (
	"praktikasud-backend/models"
)

// Compose builds the prompt pair for an operation. Enrichment text, when
// present, is appended to the system prompt with an instruction to keep it.
func Compose(op models.OperationKind, payload string, enrichment models.EnrichmentResult) models.ComposedPrompt {
	if !op.Valid() {
		op = models.OperationPractice
	}
	t := templateFor(op)

	system := t.system
	if enrichment.Present() {
		system += "\n\n" + enrichment.Body + "\n\n" + t.directive
	}

	user := t.user(payload)
	if op == models.OperationPractice && IsBankruptcyQuery(payload) {
		user = bankruptcyUserPrompt(payload, EvaluateBankruptcy(payload))
	}

	return models.ComposedPrompt{
		Operation: op,
		Query:     payload,
		System:    system,
		User:      user,
	}
}
