package domain

import "testing"

func TestPipelineStagesHaveUniqueOrdinals(t *testing.T) {
	stages := PipelineStages()
	if len(stages) != 16 {
		t.Fatalf("expected 16 pipeline stages, got %d", len(stages))
	}

	seen := make(map[int]Stage)
	for _, stage := range stages {
		ord, ok := Ordinal(stage)
		if !ok {
			t.Fatalf("pipeline stage %q has no ordinal", stage)
		}
		if prev, dup := seen[ord]; dup {
			t.Fatalf("ordinal %d shared by %q and %q", ord, prev, stage)
		}
		seen[ord] = stage
	}
}

func TestUnrestrictedStagesHaveNoOrdinal(t *testing.T) {
	for _, stage := range []Stage{StageLost, StageClosed, StageFollowUp} {
		if !IsUnrestricted(stage) {
			t.Errorf("%q should be unrestricted", stage)
		}
		if _, ok := Ordinal(stage); ok {
			t.Errorf("%q should not carry an ordinal", stage)
		}
		if !IsKnownStage(stage) {
			t.Errorf("%q should be a known stage", stage)
		}
	}
}

func TestIsKnownStageRejectsUnknown(t *testing.T) {
	if IsKnownStage(Stage("definitely_not_a_stage")) {
		t.Fatal("unknown stage reported as known")
	}
}

func TestRegistryRulesOnlyCoverPipelineStages(t *testing.T) {
	reg := NewRegistry()
	for stage := range reg.rules {
		if IsUnrestricted(stage) {
			t.Errorf("unrestricted stage %q must not have a rule", stage)
		}
		if _, ok := Ordinal(stage); !ok {
			t.Errorf("rule registered for non-pipeline stage %q", stage)
		}
	}
}

func TestRegistryRuleFieldsResolve(t *testing.T) {
	// Every prerequisite field in the default table must resolve against an
	// enriched job, otherwise the prerequisite can never be met.
	reg := NewRegistry()
	var e EnrichedJob
	for stage, rule := range reg.rules {
		for _, prereq := range rule.Prerequisites {
			if _, ok := e.Field(prereq.Field); !ok {
				t.Errorf("stage %q references unresolvable field %q", stage, prereq.Field)
			}
			if prereq.Message == "" {
				t.Errorf("stage %q prerequisite %q has no message", stage, prereq.Field)
			}
		}
	}
}
