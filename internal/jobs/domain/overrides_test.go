package domain

import "testing"

func TestApplyOverridesDisablesPrerequisite(t *testing.T) {
	overrides, err := ParseRuleOverrides([]byte(`
stages:
  scheduled:
    disable:
      - hasSurveyScheduled
`))
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	reg := NewRegistry()
	if err := reg.ApplyOverrides(overrides); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	e := enrichedAt(StageQuoteAccepted)
	e.HasWorkScheduled = true
	// hasSurveyScheduled deliberately false; the override removed it.
	check := reg.CheckTransition(e, StageScheduled)
	if !check.Allowed {
		t.Fatalf("override should have removed the survey prerequisite, unmet: %v", check.Unmet)
	}
}

func TestApplyOverridesMarksStageSkippable(t *testing.T) {
	overrides, err := ParseRuleOverrides([]byte(`
stages:
  quote_accepted:
    can_skip: true
`))
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	reg := NewRegistry()
	if err := reg.ApplyOverrides(overrides); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	// The default skip condition is deposit-not-required.
	e := enrichedAt(StageQuoteSent)
	e.DepositRequired = false
	check := reg.CheckTransition(e, StageQuoteAccepted)
	if !check.Allowed || !check.Waived {
		t.Fatalf("expected waived transition, got allowed=%v waived=%v", check.Allowed, check.Waived)
	}
}

func TestApplyOverridesRejectsUnknownStage(t *testing.T) {
	overrides, err := ParseRuleOverrides([]byte(`
stages:
  not_a_stage:
    can_skip: true
`))
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	if err := NewRegistry().ApplyOverrides(overrides); err == nil {
		t.Fatal("expected an error for an unknown stage")
	}
}

func TestApplyOverridesRejectsUnknownField(t *testing.T) {
	overrides, err := ParseRuleOverrides([]byte(`
stages:
  scheduled:
    disable:
      - notAField
`))
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	if err := NewRegistry().ApplyOverrides(overrides); err == nil {
		t.Fatal("expected an error for an unknown prerequisite field")
	}
}

func TestOverridesDoNotLeakBetweenRegistries(t *testing.T) {
	overrides, _ := ParseRuleOverrides([]byte(`
stages:
  paid:
    disable:
      - isPaidInFull
`))

	modified := NewRegistry()
	if err := modified.ApplyOverrides(overrides); err != nil {
		t.Fatalf("apply overrides: %v", err)
	}

	fresh := NewRegistry()
	rule, ok := fresh.Rule(StagePaid)
	if !ok {
		t.Fatal("paid rule missing from fresh registry")
	}
	if len(rule.Prerequisites) != 2 {
		t.Fatalf("fresh registry was mutated: %d prerequisites", len(rule.Prerequisites))
	}
}
