package domain

// RulesVersion identifies the stage rule table revision. Bump it whenever
// the table below changes so readiness reports can be correlated with the
// rules that produced them.
const RulesVersion = 3

// CheckKind is how a prerequisite field is evaluated.
type CheckKind string

const (
	// CheckTruthy requires the field to be non-false, non-empty, non-zero.
	CheckTruthy CheckKind = "truthy"
	// CheckExists requires the field to be non-nil.
	CheckExists CheckKind = "exists"
	// CheckEquals requires the field to equal a literal.
	CheckEquals CheckKind = "equals"
	// CheckHasRelated requires a derived boolean/count signal to be positive.
	CheckHasRelated CheckKind = "has_related"
)

// Prerequisite is a named, checkable condition that must hold before a
// forward transition into a stage is permitted.
type Prerequisite struct {
	Field    string
	Check    CheckKind
	Expected any
	Message  string
}

// StageRule declares the prerequisites for entering a stage.
type StageRule struct {
	Stage         Stage
	Prerequisites []Prerequisite
	// CanSkip marks the rule's prerequisites as waivable. SkipWhen decides
	// per job whether the waiver applies.
	CanSkip  bool
	SkipWhen func(EnrichedJob) bool
}

// Registry holds the stage rule table. Stages without a rule are allowed by
// default (fail-open for custom stages); the three unrestricted stages never
// appear here.
type Registry struct {
	rules map[Stage]StageRule
}

// Rule returns the rule for a stage, if one is registered.
func (r *Registry) Rule(stage Stage) (StageRule, bool) {
	rule, ok := r.rules[stage]
	return rule, ok
}

func depositNotRequired(e EnrichedJob) bool { return !e.DepositRequired }

// NewRegistry builds the default stage rule table. The returned registry is
// independent, so override files applied to one instance do not leak into
// another.
func NewRegistry() *Registry {
	rules := []StageRule{
		{
			Stage: StageSurveyBooked,
			Prerequisites: []Prerequisite{
				{Field: "partnerId", Check: CheckExists, Message: "a delivery partner must be assigned before booking a survey"},
				{Field: "hasSurveyScheduled", Check: CheckHasRelated, Message: "no survey has been scheduled for this job"},
			},
		},
		{
			Stage: StageSurveyCompleted,
			Prerequisites: []Prerequisite{
				{Field: "hasSurveyScheduled", Check: CheckHasRelated, Message: "no survey has been scheduled for this job"},
			},
		},
		{
			Stage: StageQuoteDrafted,
			Prerequisites: []Prerequisite{
				{Field: "hasQuoteItems", Check: CheckHasRelated, Message: "the job needs at least one priced line item"},
			},
		},
		{
			Stage: StageQuoteSent,
			Prerequisites: []Prerequisite{
				{Field: "hasQuoteItems", Check: CheckHasRelated, Message: "the job needs at least one priced line item"},
				{Field: "quotedValue", Check: CheckTruthy, Message: "the job has no quoted value"},
			},
		},
		{
			Stage: StageQuoteAccepted,
			Prerequisites: []Prerequisite{
				{Field: "quoteResponse", Check: CheckEquals, Expected: QuoteResponseAccepted, Message: "the client has not accepted the quote"},
			},
		},
		{
			Stage: StageDepositInvoiced,
			Prerequisites: []Prerequisite{
				{Field: "quoteResponse", Check: CheckEquals, Expected: QuoteResponseAccepted, Message: "the client has not accepted the quote"},
			},
			CanSkip:  true,
			SkipWhen: depositNotRequired,
		},
		{
			Stage: StageDepositPaid,
			Prerequisites: []Prerequisite{
				{Field: "depositReceived", Check: CheckTruthy, Message: "the deposit has not been received"},
			},
			CanSkip:  true,
			SkipWhen: depositNotRequired,
		},
		{
			Stage: StageScheduled,
			Prerequisites: []Prerequisite{
				{Field: "hasSurveyScheduled", Check: CheckHasRelated, Message: "no survey has been scheduled for this job"},
				{Field: "hasWorkScheduled", Check: CheckHasRelated, Message: "no work start has been confirmed for this job"},
			},
		},
		{
			Stage: StageInProgress,
			Prerequisites: []Prerequisite{
				{Field: "hasWorkScheduled", Check: CheckHasRelated, Message: "no work start has been confirmed for this job"},
			},
		},
		{
			Stage: StageInvoiced,
			Prerequisites: []Prerequisite{
				{Field: "hasInvoice", Check: CheckHasRelated, Message: "no invoice has been sent for this job"},
			},
		},
		{
			Stage: StagePaid,
			Prerequisites: []Prerequisite{
				{Field: "hasInvoice", Check: CheckHasRelated, Message: "no invoice has been sent for this job"},
				{Field: "isPaidInFull", Check: CheckTruthy, Message: "the job has an outstanding balance"},
			},
		},
	}

	table := make(map[Stage]StageRule, len(rules))
	for _, rule := range rules {
		table[rule.Stage] = rule
	}
	return &Registry{rules: table}
}
