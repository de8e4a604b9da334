package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestMigrateConfig(t *testing.T) {
	tests := []struct {
		name                          string
		input                         string
		expectError                   string
		expectNeedsUpdate             bool
		expectFromVersion             int
		expectToVersion               int
		expectDeprecatedFields        []string
		expectMissingFields           []string
		expectMissingOptionalSections []string
		shouldContain                 []string
		shouldNotContain              []string
	}{
		{
			name: "v0 to v1: moves flat keys into sections",
			input: `timezone: Europe/Paris
format: unix
retention: 14d
database:
  path: /custom/history.db
`,
			expectNeedsUpdate: true,
			expectFromVersion: 0,
			expectToVersion:   1,
			expectDeprecatedFields: []string{
				"timezone (moved to parser.timezone)",
				"format (moved to parser.format)",
				"database.path (moved to history.path)",
				"retention (moved to history.retention)",
			},
			expectMissingOptionalSections: []string{"compare"},
			shouldContain: []string{
				"version: 1",
				"parser:",
				"timezone: Europe/Paris",
				"format: unix",
				"path: /custom/history.db",
				"retention: 14d",
			},
			shouldNotContain: []string{"database:"},
		},
		{
			name: "v0 to v1: adds parser defaults",
			input: `history:
  enabled: false
`,
			expectNeedsUpdate:             true,
			expectFromVersion:             0,
			expectToVersion:               1,
			expectMissingFields:           []string{"parser.timezone", "parser.format"},
			expectMissingOptionalSections: []string{"compare"},
			shouldContain: []string{
				"version: 1",
				"enabled: false",
				"timezone: Local",
				"format: rfc3339",
				"# Output format",
			},
		},
		{
			name: "v0 to v1: new key wins over legacy key",
			input: `timezone: Asia/Tokyo
parser:
  timezone: UTC
`,
			expectNeedsUpdate:      true,
			expectDeprecatedFields: []string{"timezone (moved to parser.timezone)"},
			expectMissingFields:    []string{"parser.format"},
			shouldContain:          []string{"timezone: UTC"},
			shouldNotContain:       []string{"Asia/Tokyo"},
		},
		{
			name: "v1: already up to date",
			input: `version: 1
parser:
  timezone: Local
  format: iso
history:
  enabled: true
compare:
  engines: [when]
`,
			expectNeedsUpdate: false,
			expectFromVersion: 1,
			expectToVersion:   1,
			shouldContain:     []string{"format: iso", "engines: [when]"},
		},
		{
			name: "v1: missing optional section",
			input: `version: 1
parser:
  format: iso
history:
  enabled: true
`,
			expectNeedsUpdate:             true,
			expectFromVersion:             1,
			expectToVersion:               1,
			expectMissingOptionalSections: []string{"compare"},
		},
		{
			name: "v1: legacy key is a version mismatch",
			input: `version: 1
timezone: UTC
`,
			expectError: "legacy top-level key \"timezone\"",
		},
		{
			name:        "v0: parser must be a section",
			input:       "parser: fast\n",
			expectError: "'parser' key that is not a section",
		},
		{
			name:        "future version",
			input:       "version: 99\n",
			expectError: "newer than supported",
		},
		{
			name:        "invalid yaml",
			input:       "invalid: yaml: [unclosed",
			expectError: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, summary, err := MigrateConfig([]byte(tt.input))

			if tt.expectError != "" {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.expectError) {
					t.Errorf("expected error containing %q, got: %v", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if summary.NeedsUpdate != tt.expectNeedsUpdate {
				t.Errorf("expected NeedsUpdate=%v, got %v", tt.expectNeedsUpdate, summary.NeedsUpdate)
			}

			if tt.expectFromVersion > 0 && summary.FromVersion != tt.expectFromVersion {
				t.Errorf("expected FromVersion=%d, got %d", tt.expectFromVersion, summary.FromVersion)
			}

			if tt.expectToVersion > 0 && summary.ToVersion != tt.expectToVersion {
				t.Errorf("expected ToVersion=%d, got %d", tt.expectToVersion, summary.ToVersion)
			}

			if len(tt.expectDeprecatedFields) > 0 {
				if !summary.HasDeprecatedFields {
					t.Error("expected HasDeprecatedFields=true, got false")
				}
				assertContainsAll(t, "deprecated field", summary.DeprecatedFields, tt.expectDeprecatedFields)
			}

			assertContainsAll(t, "missing field", summary.MissingFields, tt.expectMissingFields)
			assertContainsAll(t, "missing optional section", summary.MissingOptionalSections, tt.expectMissingOptionalSections)

			resultStr := string(result)

			for _, shouldContain := range tt.shouldContain {
				if !strings.Contains(resultStr, shouldContain) {
					t.Errorf("expected result to contain %q, but it didn't.\nGot:\n%s", shouldContain, resultStr)
				}
			}

			for _, shouldNotContain := range tt.shouldNotContain {
				if strings.Contains(resultStr, shouldNotContain) {
					t.Errorf("expected result NOT to contain %q, but it did.\nGot:\n%s", shouldNotContain, resultStr)
				}
			}

			var parsed map[string]interface{}
			if err := yaml.Unmarshal(result, &parsed); err != nil {
				t.Errorf("migrated config is not valid YAML: %v\nGot:\n%s", err, resultStr)
			}
		})
	}
}

func assertContainsAll(t *testing.T, what string, got, want []string) {
	t.Helper()
	for _, w := range want {
		found := false
		for _, g := range got {
			if g == w {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s %q not found in %v", what, w, got)
		}
	}
}

func TestMigrateConfig_UpToDateReturnsInput(t *testing.T) {
	input := `version: 1
# keep this comment
parser:
  timezone: UTC
history:
  enabled: false
compare:
  engines: []
`
	result, summary, err := MigrateConfig([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.NeedsUpdate {
		t.Error("expected NeedsUpdate=false")
	}
	if string(result) != input {
		t.Errorf("expected config to be returned unchanged, got:\n%s", result)
	}
}

func TestMigrateConfig_EmptyFile(t *testing.T) {
	result, summary, err := MigrateConfig([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.FromVersion != 0 || summary.ToVersion != 1 {
		t.Errorf("expected v0→v1, got v%d→v%d", summary.FromVersion, summary.ToVersion)
	}
	if len(summary.MissingOptionalSections) != 2 {
		t.Errorf("expected history and compare to be missing, got %v", summary.MissingOptionalSections)
	}

	config, err := Parse(result)
	if err != nil {
		t.Fatalf("migrated config does not load: %v\n%s", err, result)
	}
	if config.Parser.Format != FormatRFC3339 {
		t.Errorf("expected default format, got %q", config.Parser.Format)
	}
}

func TestApplyOptionalSections(t *testing.T) {
	input := []byte("version: 1\nparser:\n  format: unix\n")

	result, err := ApplyOptionalSections(input, []string{"compare", "history"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(result, &raw); err != nil {
		t.Fatalf("result is not valid YAML: %v", err)
	}

	compare, ok := raw["compare"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected compare section, got %v", raw["compare"])
	}
	engines, _ := compare["engines"].([]interface{})
	if len(engines) != len(Engines) {
		t.Errorf("expected %d engines, got %v", len(Engines), engines)
	}
	if _, ok := raw["history"]; !ok {
		t.Error("expected history section")
	}
	if !strings.Contains(string(result), "format: unix") {
		t.Error("expected existing values to be preserved")
	}

	unchanged, err := ApplyOptionalSections(input, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(unchanged) != string(input) {
		t.Error("expected input to be returned when nothing is missing")
	}
}
