// Package domain provides core business rules for the jobs bounded context:
// the pipeline stage registry and the stage transition validator.
package domain

// Stage is one discrete position in a job's fixed pipeline.
type Stage string

const (
	StageNewEnquiry      Stage = "new_enquiry"
	StageSurveyRequested Stage = "survey_requested"
	StageSurveyBooked    Stage = "survey_booked"
	StageSurveyCompleted Stage = "survey_completed"
	StageQuoteDrafted    Stage = "quote_drafted"
	StageQuoteSent       Stage = "quote_sent"
	StageQuoteAccepted   Stage = "quote_accepted"
	StageDepositInvoiced Stage = "deposit_invoiced"
	StageDepositPaid     Stage = "deposit_paid"
	StageScheduled       Stage = "scheduled"
	StageInProgress      Stage = "in_progress"
	StageWorkCompleted   Stage = "work_completed"
	StageInvoiced        Stage = "invoiced"
	StagePaid            Stage = "paid"
	StageReviewRequested Stage = "review_requested"
	StageComplete        Stage = "complete"

	// Unrestricted side stages, reachable from any state with no checks.
	StageLost     Stage = "lost"
	StageClosed   Stage = "closed"
	StageFollowUp Stage = "follow_up"
)

// stageOrder fixes the pipeline ordering. Ordinal position determines what
// counts as a forward transition; the unrestricted stages carry no ordinal.
var stageOrder = []Stage{
	StageNewEnquiry,
	StageSurveyRequested,
	StageSurveyBooked,
	StageSurveyCompleted,
	StageQuoteDrafted,
	StageQuoteSent,
	StageQuoteAccepted,
	StageDepositInvoiced,
	StageDepositPaid,
	StageScheduled,
	StageInProgress,
	StageWorkCompleted,
	StageInvoiced,
	StagePaid,
	StageReviewRequested,
	StageComplete,
}

var unrestrictedStages = map[Stage]struct{}{
	StageLost:     {},
	StageClosed:   {},
	StageFollowUp: {},
}

var stageOrdinals = func() map[Stage]int {
	ordinals := make(map[Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		ordinals[s] = i
	}
	return ordinals
}()

// PipelineStages returns the ordered pipeline stages (unrestricted stages excluded).
func PipelineStages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Ordinal returns the position of a stage in the pipeline.
// The second return is false for unrestricted or unknown stages.
func Ordinal(stage Stage) (int, bool) {
	ord, ok := stageOrdinals[stage]
	return ord, ok
}

// IsUnrestricted reports whether the stage is reachable from any other
// stage without prerequisite checks.
func IsUnrestricted(stage Stage) bool {
	_, ok := unrestrictedStages[stage]
	return ok
}

// IsKnownStage reports whether the stage is part of the pipeline or one of
// the unrestricted side stages.
func IsKnownStage(stage Stage) bool {
	if _, ok := stageOrdinals[stage]; ok {
		return true
	}
	return IsUnrestricted(stage)
}
