package domain

import (
	"testing"

	"github.com/google/uuid"
)

func enrichedAt(stage Stage) EnrichedJob {
	return EnrichedJob{
		JobID:     uuid.New(),
		ContactID: uuid.New(),
		Status:    stage,
	}
}

func TestUnrestrictedStagesAllowedFromEveryStage(t *testing.T) {
	reg := NewRegistry()

	froms := append(PipelineStages(), StageLost, StageClosed, StageFollowUp)
	for _, from := range froms {
		for _, target := range []Stage{StageLost, StageClosed, StageFollowUp} {
			check := reg.CheckTransition(enrichedAt(from), target)
			if !check.Allowed {
				t.Errorf("transition %s -> %s should be allowed", from, target)
			}
			if len(check.Unmet) != 0 {
				t.Errorf("transition %s -> %s should carry no unmet prerequisites", from, target)
			}
		}
	}
}

func TestBackwardAndLateralMovesAllowedUnconditionally(t *testing.T) {
	reg := NewRegistry()

	// A job sitting at paid with none of the paid prerequisites satisfied
	// may still move back to any earlier stage, or stay where it is.
	e := enrichedAt(StagePaid)
	for _, target := range PipelineStages() {
		targetOrd, _ := Ordinal(target)
		currentOrd, _ := Ordinal(StagePaid)
		if targetOrd > currentOrd {
			continue
		}
		check := reg.CheckTransition(e, target)
		if !check.Allowed {
			t.Errorf("backward/lateral move paid -> %s should be allowed, unmet: %v", target, check.Unmet)
		}
	}
}

func TestForwardTransitionRejectedWithExactUnmetList(t *testing.T) {
	// Spec scenario: job quoted, no survey and no confirmed schedule
	// proposal, attempting to move to scheduled.
	reg := NewRegistry()
	e := enrichedAt(StageQuoteAccepted)
	e.QuoteResponse = QuoteResponseAccepted

	check := reg.CheckTransition(e, StageScheduled)
	if check.Allowed {
		t.Fatal("transition to scheduled should be rejected")
	}
	if len(check.Unmet) != 2 {
		t.Fatalf("expected 2 unmet prerequisites, got %d: %v", len(check.Unmet), check.Unmet)
	}
	if check.Unmet[0].Field != "hasSurveyScheduled" || check.Unmet[1].Field != "hasWorkScheduled" {
		t.Fatalf("unexpected unmet fields: %s, %s", check.Unmet[0].Field, check.Unmet[1].Field)
	}
	for _, unmet := range check.Unmet {
		if unmet.Message == "" {
			t.Errorf("unmet prerequisite %s has no message", unmet.Field)
		}
	}
}

func TestForwardTransitionAllowedWhenPrerequisitesMet(t *testing.T) {
	reg := NewRegistry()
	e := enrichedAt(StageQuoteAccepted)
	e.QuoteResponse = QuoteResponseAccepted
	e.HasSurveyScheduled = true
	e.HasWorkScheduled = true

	check := reg.CheckTransition(e, StageScheduled)
	if !check.Allowed {
		t.Fatalf("transition should be allowed, unmet: %v", check.Unmet)
	}
	if len(check.All) != 2 {
		t.Fatalf("expected 2 evaluated prerequisites, got %d", len(check.All))
	}
}

func TestDepositStageSkippedWhenDepositNotRequired(t *testing.T) {
	// Spec scenario: quote_sent with depositRequired=false moving to
	// deposit_paid is allowed via the skip rule despite depositReceived=false.
	reg := NewRegistry()
	e := enrichedAt(StageQuoteSent)
	e.DepositRequired = false
	e.DepositReceived = false

	check := reg.CheckTransition(e, StageDepositPaid)
	if !check.Allowed {
		t.Fatalf("deposit_paid should be reachable via skip rule, unmet: %v", check.Unmet)
	}
	if !check.Waived {
		t.Fatal("expected the skip rule to be reported as waived")
	}
	for _, result := range check.All {
		if !result.Met {
			t.Errorf("waived prerequisite %s should be reported as met", result.Field)
		}
	}
}

func TestDepositStageEnforcedWhenDepositRequired(t *testing.T) {
	reg := NewRegistry()
	e := enrichedAt(StageDepositInvoiced)
	e.DepositRequired = true
	e.DepositReceived = false

	check := reg.CheckTransition(e, StageDepositPaid)
	if check.Allowed {
		t.Fatal("deposit_paid should be blocked while the deposit is outstanding")
	}
	if len(check.Unmet) != 1 || check.Unmet[0].Field != "depositReceived" {
		t.Fatalf("expected depositReceived to block, got %v", check.Unmet)
	}
}

func TestUnknownTargetStageFailsOpen(t *testing.T) {
	reg := NewRegistry()
	check := reg.CheckTransition(enrichedAt(StageNewEnquiry), Stage("bespoke_stage"))
	if !check.Allowed {
		t.Fatal("unknown stage should be allowed by default")
	}
}

func TestStageWithoutRuleAllowedByDefault(t *testing.T) {
	reg := NewRegistry()
	check := reg.CheckTransition(enrichedAt(StageInvoiced), StageReviewRequested)
	if !check.Allowed {
		t.Fatalf("review_requested has no rule and must be allowed, unmet: %v", check.Unmet)
	}
}

func TestPaidStageRequiresInvoiceAndFullPayment(t *testing.T) {
	reg := NewRegistry()
	e := enrichedAt(StageInvoiced)
	e.QuotedValueCents = 100000
	e.HasInvoice = true
	e.PaidAmountCents = 50000
	e.IsPaidInFull = false

	check := reg.CheckTransition(e, StagePaid)
	if check.Allowed {
		t.Fatal("paid should be blocked while a balance is outstanding")
	}
	if len(check.Unmet) != 1 || check.Unmet[0].Field != "isPaidInFull" {
		t.Fatalf("expected isPaidInFull to block, got %v", check.Unmet)
	}

	e.PaidAmountCents = 100000
	e.IsPaidInFull = true
	if check := reg.CheckTransition(e, StagePaid); !check.Allowed {
		t.Fatalf("paid should be allowed once settled, unmet: %v", check.Unmet)
	}
}

func TestReadinessCoversEveryPipelineStageInOrder(t *testing.T) {
	reg := NewRegistry()
	checks := reg.Readiness(enrichedAt(StageNewEnquiry))

	stages := PipelineStages()
	if len(checks) != len(stages) {
		t.Fatalf("expected %d readiness entries, got %d", len(stages), len(checks))
	}
	for i, check := range checks {
		if check.Target != stages[i] {
			t.Fatalf("readiness entry %d is %s, want %s", i, check.Target, stages[i])
		}
	}
}
