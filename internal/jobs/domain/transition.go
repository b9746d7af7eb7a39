package domain

// PrerequisiteResult is the evaluation of a single prerequisite against an
// enriched job, returned as data for the caller to display.
type PrerequisiteResult struct {
	Field   string `json:"field"`
	Check   string `json:"check"`
	Message string `json:"message"`
	Met     bool   `json:"met"`
}

// TransitionCheck is the outcome of validating one proposed stage change.
type TransitionCheck struct {
	Target  Stage                `json:"target"`
	Allowed bool                 `json:"allowed"`
	// Waived is true when the stage's skip condition held and every
	// prerequisite was treated as met regardless of its own result.
	Waived bool                 `json:"waived"`
	Unmet  []PrerequisiteResult `json:"unmet"`
	All    []PrerequisiteResult `json:"all"`
}

// CheckTransition decides whether the job may move to the target stage.
//
// Unrestricted targets and backward/lateral moves are allowed
// unconditionally. Unknown target stages are allowed by default: the
// registry fails open so custom stages never dead-lock a job (the same
// fail-open posture the ledger recorder takes on write failures).
func (r *Registry) CheckTransition(e EnrichedJob, target Stage) TransitionCheck {
	check := TransitionCheck{Target: target, Allowed: true}

	if IsUnrestricted(target) {
		return check
	}

	targetOrd, known := Ordinal(target)
	if currentOrd, ok := Ordinal(e.Status); ok && known && targetOrd <= currentOrd {
		// Backward or lateral move. Never re-validated: prerequisites were
		// checked on the way forward.
		return check
	}

	rule, ok := r.Rule(target)
	if !ok {
		return check
	}

	check.All = make([]PrerequisiteResult, 0, len(rule.Prerequisites))
	for _, prereq := range rule.Prerequisites {
		result := evaluate(e, prereq)
		check.All = append(check.All, result)
		if !result.Met {
			check.Unmet = append(check.Unmet, result)
		}
	}

	if rule.CanSkip && rule.SkipWhen != nil && rule.SkipWhen(e) {
		check.Waived = true
		check.Unmet = nil
		for i := range check.All {
			check.All[i].Met = true
		}
	}

	check.Allowed = len(check.Unmet) == 0
	return check
}

// Readiness evaluates every registered pipeline stage against the enriched
// job, producing a "what blocks each stage" report in ordinal order.
func (r *Registry) Readiness(e EnrichedJob) []TransitionCheck {
	checks := make([]TransitionCheck, 0, len(stageOrder))
	for _, stage := range stageOrder {
		checks = append(checks, r.CheckTransition(e, stage))
	}
	return checks
}

func evaluate(e EnrichedJob, prereq Prerequisite) PrerequisiteResult {
	result := PrerequisiteResult{
		Field:   prereq.Field,
		Check:   string(prereq.Check),
		Message: prereq.Message,
	}

	value, ok := e.Field(prereq.Field)
	if !ok {
		// Unresolvable field: the prerequisite cannot hold.
		return result
	}

	switch prereq.Check {
	case CheckTruthy:
		result.Met = isTruthy(value)
	case CheckExists:
		result.Met = value != nil
	case CheckEquals:
		result.Met = value == prereq.Expected
	case CheckHasRelated:
		result.Met = isPositive(value)
	}
	return result
}

func isTruthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		return typed != ""
	case int64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return true
	}
}

func isPositive(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case int64:
		return typed > 0
	case int:
		return typed > 0
	default:
		return false
	}
}
