package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleOverrides is an ops-supplied YAML document that tunes the default rule
// table without a deploy: a stage may be marked skippable or have individual
// prerequisites disabled. Stages and fields must already exist in the table;
// the file cannot introduce new rules.
type RuleOverrides struct {
	Stages map[string]StageOverride `yaml:"stages"`
}

// StageOverride adjusts one registered stage rule.
type StageOverride struct {
	CanSkip *bool    `yaml:"can_skip"`
	Disable []string `yaml:"disable"`
}

// ParseRuleOverrides decodes an override document.
func ParseRuleOverrides(data []byte) (*RuleOverrides, error) {
	var overrides RuleOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse stage rule overrides: %w", err)
	}
	return &overrides, nil
}

// ApplyOverrides mutates the registry in place. Unknown stages or fields are
// rejected so a typo cannot silently leave a rule unmodified.
func (r *Registry) ApplyOverrides(overrides *RuleOverrides) error {
	if overrides == nil {
		return nil
	}

	for name, override := range overrides.Stages {
		stage := Stage(name)
		rule, ok := r.rules[stage]
		if !ok {
			return fmt.Errorf("stage rule override: unknown stage %q", name)
		}

		if override.CanSkip != nil {
			rule.CanSkip = *override.CanSkip
			if rule.SkipWhen == nil {
				rule.SkipWhen = depositNotRequired
			}
		}

		for _, field := range override.Disable {
			kept := rule.Prerequisites[:0:0]
			found := false
			for _, prereq := range rule.Prerequisites {
				if prereq.Field == field {
					found = true
					continue
				}
				kept = append(kept, prereq)
			}
			if !found {
				return fmt.Errorf("stage rule override: stage %q has no prerequisite on %q", name, field)
			}
			rule.Prerequisites = kept
		}

		r.rules[stage] = rule
	}
	return nil
}
