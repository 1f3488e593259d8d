package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Policy carries the editorial constants the engine never hardcodes: SLA
// windows per correction type, consensus thresholds, and text-length floors.
type Policy struct {
	MinReviewers        int      `yaml:"min_reviewers"`
	MinJustificationLen int      `yaml:"min_justification_len"`
	MinDetailsLen       int      `yaml:"min_details_len"`
	MinNotesLen         int      `yaml:"min_notes_len"`
	MinSummaryLen       int      `yaml:"min_summary_len"`
	SubstantialSLADays  int      `yaml:"substantial_sla_days"`
	UpdateSLADays       int      `yaml:"update_sla_days"`
	MinorSLADays        int      `yaml:"minor_sla_days"`
	RatingScale         []string `yaml:"rating_scale"`
}

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	OutboxBatchSize int

	Policy Policy
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "fact-check-engine"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	policy := Policy{
		MinReviewers:        envInt("POLICY_MIN_REVIEWERS", 2),
		MinJustificationLen: envInt("POLICY_MIN_JUSTIFICATION_LEN", 50),
		MinDetailsLen:       envInt("POLICY_MIN_DETAILS_LEN", 20),
		MinNotesLen:         envInt("POLICY_MIN_NOTES_LEN", 10),
		MinSummaryLen:       envInt("POLICY_MIN_SUMMARY_LEN", 10),
		SubstantialSLADays:  envInt("POLICY_SUBSTANTIAL_SLA_DAYS", 2),
		UpdateSLADays:       envInt("POLICY_UPDATE_SLA_DAYS", 7),
		MinorSLADays:        envInt("POLICY_MINOR_SLA_DAYS", 14),
	}
	if policyFile := strings.TrimSpace(os.Getenv("POLICY_FILE")); policyFile != "" {
		loaded, err := loadPolicyFile(policyFile)
		if err != nil {
			return Config{}, err
		}
		policy = mergePolicy(policy, loaded)
	}

	return Config{
		ServiceName:     service,
		HTTPPort:        port,
		PostgresDSN:     os.Getenv("POSTGRES_DSN"),
		OutboxBatchSize: envInt("OUTBOX_BATCH_SIZE", 50),
		Policy:          policy,
	}, nil
}

func loadPolicyFile(path string) (Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file %s: %w", path, err)
	}
	var policy Policy
	if err := yaml.Unmarshal(raw, &policy); err != nil {
		return Policy{}, fmt.Errorf("decode policy file %s: %w", path, err)
	}
	return policy, nil
}

// mergePolicy lets the policy file override env/default values field by
// field. Every policy constant is strictly positive, so the YAML contract is:
// a positive value overrides the base, while an absent, zero, or negative
// value keeps it. An explicit zero cannot be expressed through the file.
func mergePolicy(base Policy, override Policy) Policy {
	merged := base
	if override.MinReviewers > 0 {
		merged.MinReviewers = override.MinReviewers
	}
	if override.MinJustificationLen > 0 {
		merged.MinJustificationLen = override.MinJustificationLen
	}
	if override.MinDetailsLen > 0 {
		merged.MinDetailsLen = override.MinDetailsLen
	}
	if override.MinNotesLen > 0 {
		merged.MinNotesLen = override.MinNotesLen
	}
	if override.MinSummaryLen > 0 {
		merged.MinSummaryLen = override.MinSummaryLen
	}
	if override.SubstantialSLADays > 0 {
		merged.SubstantialSLADays = override.SubstantialSLADays
	}
	if override.UpdateSLADays > 0 {
		merged.UpdateSLADays = override.UpdateSLADays
	}
	if override.MinorSLADays > 0 {
		merged.MinorSLADays = override.MinorSLADays
	}
	if len(override.RatingScale) > 0 {
		merged.RatingScale = override.RatingScale
	}
	return merged
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
