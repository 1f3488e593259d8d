package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POLICY_FILE", "")
	t.Setenv("POLICY_MIN_REVIEWERS", "")
	t.Setenv("POLICY_SUBSTANTIAL_SLA_DAYS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("port = %s, want 8080", cfg.HTTPPort)
	}
	if cfg.Policy.MinReviewers != 2 {
		t.Fatalf("min reviewers = %d, want 2", cfg.Policy.MinReviewers)
	}
	if cfg.Policy.SubstantialSLADays != 2 || cfg.Policy.UpdateSLADays != 7 || cfg.Policy.MinorSLADays != 14 {
		t.Fatalf("sla days = %d/%d/%d, want 2/7/14",
			cfg.Policy.SubstantialSLADays, cfg.Policy.UpdateSLADays, cfg.Policy.MinorSLADays)
	}
	if cfg.Policy.MinJustificationLen != 50 {
		t.Fatalf("min justification = %d, want 50", cfg.Policy.MinJustificationLen)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POLICY_FILE", "")
	t.Setenv("POLICY_MIN_REVIEWERS", "3")
	t.Setenv("POLICY_MINOR_SLA_DAYS", "21")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy.MinReviewers != 3 {
		t.Fatalf("min reviewers = %d, want 3", cfg.Policy.MinReviewers)
	}
	if cfg.Policy.MinorSLADays != 21 {
		t.Fatalf("minor sla = %d, want 21", cfg.Policy.MinorSLADays)
	}
}

func TestLoadPolicyFileOverridesEnv(t *testing.T) {
	policyPath := filepath.Join(t.TempDir(), "policy.yaml")
	policyYAML := []byte("min_reviewers: 4\nsubstantial_sla_days: 1\nrating_scale:\n  - accurate\n  - inaccurate\n")
	if err := os.WriteFile(policyPath, policyYAML, 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	t.Setenv("POLICY_FILE", policyPath)
	t.Setenv("POLICY_MIN_REVIEWERS", "3")
	t.Setenv("POLICY_UPDATE_SLA_DAYS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Policy.MinReviewers != 4 {
		t.Fatalf("min reviewers = %d, want file value 4", cfg.Policy.MinReviewers)
	}
	if cfg.Policy.SubstantialSLADays != 1 {
		t.Fatalf("substantial sla = %d, want file value 1", cfg.Policy.SubstantialSLADays)
	}
	// Fields absent from the file keep the env value.
	if cfg.Policy.UpdateSLADays != 5 {
		t.Fatalf("update sla = %d, want env value 5", cfg.Policy.UpdateSLADays)
	}
	if len(cfg.Policy.RatingScale) != 2 {
		t.Fatalf("rating scale = %v, want two entries", cfg.Policy.RatingScale)
	}
}

func TestLoadPolicyFileZeroKeepsBase(t *testing.T) {
	policyPath := filepath.Join(t.TempDir(), "policy.yaml")
	policyYAML := []byte("min_reviewers: 0\nminor_sla_days: -1\n")
	if err := os.WriteFile(policyPath, policyYAML, 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	t.Setenv("POLICY_FILE", policyPath)
	t.Setenv("POLICY_MIN_REVIEWERS", "3")
	t.Setenv("POLICY_MINOR_SLA_DAYS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Non-positive file values are treated as absent, never as overrides.
	if cfg.Policy.MinReviewers != 3 {
		t.Fatalf("min reviewers = %d, want env value 3", cfg.Policy.MinReviewers)
	}
	if cfg.Policy.MinorSLADays != 14 {
		t.Fatalf("minor sla = %d, want default 14", cfg.Policy.MinorSLADays)
	}
}

func TestLoadRejectsMalformedPolicyFile(t *testing.T) {
	policyPath := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(policyPath, []byte("min_reviewers: [not an int"), 0o600); err != nil {
		t.Fatalf("write policy file: %v", err)
	}
	t.Setenv("POLICY_FILE", policyPath)

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a malformed policy file, want error")
	}
}
