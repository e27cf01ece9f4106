package config

import (
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := Default()
	return cfg
}

func TestValidateDefaults(t *testing.T) {
	if errs := validConfig().Validate(); len(errs) != 0 {
		t.Errorf("default config must validate, got %v", errs)
	}
}

func TestValidateBranchPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"default", "{user}/{number}-{title}", false},
		{"number only", "issue-{number}", false},
		{"empty", "", true},
		{"no placeholders", "feature/static", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Branch.Pattern = tt.pattern
			errs := cfg.Validate()
			if tt.wantErr && len(errs) == 0 {
				t.Errorf("pattern %q should be rejected", tt.pattern)
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Errorf("pattern %q should be accepted, got %v", tt.pattern, errs)
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	errs := cfg.Validate()
	if len(errs) != 1 || errs[0].Field != "logging.level" {
		t.Errorf("errs = %v", errs)
	}
}

func TestValidationErrorsFormatting(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Value: 1, Message: "bad"},
		{Field: "b", Value: "x", Message: "worse"},
	}
	msg := errs.Error()
	if !strings.Contains(msg, "2 validation errors") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "a: bad (got: 1)") {
		t.Errorf("message = %q", msg)
	}

	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if one.Error() != "a: bad (got: 1)" {
		t.Errorf("single error = %q", one.Error())
	}
}
