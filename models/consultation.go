package models

// Domain represents the legal subject-matter category of a query
type Domain string

const (
	DomainLabor          Domain = "labor"
	DomainCivil          Domain = "civil"
	DomainFamily         Domain = "family"
	DomainHousing        Domain = "housing"
	DomainAdministrative Domain = "administrative"
	DomainBankruptcy     Domain = "bankruptcy"
	DomainCriminal       Domain = "criminal"
	DomainGeneral        Domain = "general"
)

// DomainHit is the keyword-hit count of one domain
type DomainHit struct {
	Domain Domain `json:"domain"`
	Count  int    `json:"count"`
}

// ClassifiedContext represents the result of query classification
type ClassifiedContext struct {
	Domain        Domain      `json:"domain"`
	Hits          []DomainHit `json:"hits"`
	LowConfidence bool        `json:"low_confidence"`
}

// ProcedureType represents the bankruptcy procedure selected by debt amount
type ProcedureType string

const (
	ProcedureNone               ProcedureType = "none"
	ProcedureExtrajudicial      ProcedureType = "extrajudicial"
	ProcedureJudicial           ProcedureType = "judicial"
	ProcedureOptional           ProcedureType = "optional"
	ProcedureInsufficientAmount ProcedureType = "insufficient_amount"
)

// BankruptcyContext represents bankruptcy-specific facts extracted from a query
type BankruptcyContext struct {
	IsBankruptcy   bool          `json:"is_bankruptcy"`
	DebtAmount     *int64        `json:"debt_amount,omitempty"`
	Procedure      ProcedureType `json:"procedure_type"`
	ApplicableLaws []string      `json:"applicable_laws"`
	GenericAdvice  bool          `json:"generic_advice,omitempty"`
}

// HasProcedure reports whether a procedure type was determined
func (b BankruptcyContext) HasProcedure() bool {
	return b.Procedure != "" && b.Procedure != ProcedureNone
}

// EnrichmentSource tells where an enrichment body came from
type EnrichmentSource string

const (
	EnrichmentSuccess  EnrichmentSource = "success"
	EnrichmentFallback EnrichmentSource = "fallback"
	EnrichmentError    EnrichmentSource = "error"
)

// EnrichmentResult represents context retrieved from the knowledge provider
type EnrichmentResult struct {
	Body   string           `json:"body,omitempty"`
	Source EnrichmentSource `json:"source"`
}

// Present reports whether the result carries text
func (e EnrichmentResult) Present() bool {
	return e.Body != ""
}

// OperationKind is the closed set of consultation operations
type OperationKind string

const (
	OperationPractice       OperationKind = "practice"
	OperationComplaint      OperationKind = "complaint"
	OperationCheck          OperationKind = "check"
	OperationConstitutional OperationKind = "constitutional"
)

// Operations lists every operation kind in canonical order
var Operations = []OperationKind{
	OperationPractice,
	OperationComplaint,
	OperationCheck,
	OperationConstitutional,
}

// Valid reports whether k is one of the known operation kinds
func (k OperationKind) Valid() bool {
	for _, op := range Operations {
		if op == k {
			return true
		}
	}
	return false
}

// ComposedPrompt represents the system and user prompts sent to the completion provider
type ComposedPrompt struct {
	Operation OperationKind `json:"operation"`
	Query     string        `json:"-"`
	System    string        `json:"system_prompt"`
	User      string        `json:"user_prompt"`
}

// OutcomeStatus tells whether an external call produced a live answer
type OutcomeStatus string

const (
	OutcomeOK       OutcomeStatus = "ok"
	OutcomeDegraded OutcomeStatus = "degraded"
)

// Outcome is the result of a single-attempt external call; Text is never empty
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Text   string        `json:"text"`
	Reason string        `json:"reason,omitempty"`
}

// Ok wraps a live answer
func Ok(text string) Outcome {
	return Outcome{Status: OutcomeOK, Text: text}
}

// Degraded wraps a substitute answer and the reason it was used
func Degraded(text, reason string) Outcome {
	return Outcome{Status: OutcomeDegraded, Text: text, Reason: reason}
}

// IsDegraded reports whether the outcome is a substitute answer
func (o Outcome) IsDegraded() bool {
	return o.Status == OutcomeDegraded
}
