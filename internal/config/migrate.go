package config

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// MigrationSummary contains information about config changes
type MigrationSummary struct {
	FromVersion             int
	ToVersion               int
	HasDeprecatedFields     bool
	DeprecatedFields        []string
	MissingFields           []string
	MissingOptionalSections []string // Top-level optional sections missing (history, compare)
	NeedsUpdate             bool
}

// MigrationFunc is a function that migrates config from version N to N+1
type MigrationFunc func(raw map[string]interface{}, summary *MigrationSummary) error

// migrations is the registry of version-specific migration functions
// Each migration bumps the version by 1
var migrations = map[int]MigrationFunc{
	0: migrateV0ToV1, // v0 (flat keys, no version field) -> v1
}

// LegacyField describes a v0 key and where v1 keeps it
type LegacyField struct {
	OldPath string
	NewPath string
}

// LegacyFields lists the flat v0 keys that moved into sections in v1
var LegacyFields = []LegacyField{
	{OldPath: "timezone", NewPath: "parser.timezone"},
	{OldPath: "format", NewPath: "parser.format"},
	{OldPath: "database.path", NewPath: "history.path"},
	{OldPath: "retention", NewPath: "history.retention"},
}

// MigrateConfig analyzes and migrates a config file to the latest schema
// Returns the migrated content and a summary of changes
func MigrateConfig(data []byte) ([]byte, *MigrationSummary, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	currentVersion := 0
	if v, ok := raw["version"]; ok {
		if vInt, isInt := v.(int); isInt {
			currentVersion = vInt
		}
	}

	if currentVersion > CurrentConfigVersion {
		return nil, nil, fmt.Errorf(
			"config version %d is newer than supported version %d - please upgrade getdate",
			currentVersion, CurrentConfigVersion,
		)
	}

	if err := validateConfigVersion(raw, currentVersion); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	missingOptionalSections := detectMissingOptionalSections(raw)

	if currentVersion == CurrentConfigVersion {
		return data, &MigrationSummary{
			FromVersion:             currentVersion,
			ToVersion:               currentVersion,
			MissingOptionalSections: missingOptionalSections,
			NeedsUpdate:             len(missingOptionalSections) > 0,
		}, nil
	}

	summary := &MigrationSummary{
		FromVersion:             currentVersion,
		ToVersion:               CurrentConfigVersion,
		DeprecatedFields:        []string{},
		MissingFields:           []string{},
		MissingOptionalSections: missingOptionalSections,
		NeedsUpdate:             true,
	}

	for version := currentVersion; version < CurrentConfigVersion; version++ {
		migrationFunc, exists := migrations[version]
		if !exists {
			return nil, nil, fmt.Errorf("no migration function found for version %d to %d", version, version+1)
		}

		if err := migrationFunc(raw, summary); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate from v%d to v%d: %w", version, version+1, err)
		}
	}

	raw["version"] = CurrentConfigVersion

	// Sections created by the migration are no longer missing.
	summary.MissingOptionalSections = detectMissingOptionalSections(raw)

	updatedYAML, err := marshalWithComments(raw, summary.MissingFields)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal updated config: %w", err)
	}

	return updatedYAML, summary, nil
}

// marshalWithComments marshals the config and adds commented examples for missing fields
func marshalWithComments(raw map[string]interface{}, missingFields []string) ([]byte, error) {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}

	addMissingFieldComments(&node, missingFields)

	return yaml.Marshal(&node)
}

// addMissingFieldComments adds commented examples for missing fields
func addMissingFieldComments(node *yaml.Node, missingFields []string) {
	if len(missingFields) == 0 {
		return
	}

	missingSet := make(map[string]bool)
	for _, field := range missingFields {
		missingSet[field] = true
	}

	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		rootNode := node.Content[0]
		if rootNode.Kind == yaml.MappingNode {
			addCommentsToMapping(rootNode, missingSet)
		}
	}
}

// addCommentsToMapping adds example values for missing parser fields
func addCommentsToMapping(node *yaml.Node, missingFields map[string]bool) {
	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := node.Content[i+1]

		if keyNode.Value != "parser" || valueNode.Kind != yaml.MappingNode {
			continue
		}
		valueNode.Style &^= yaml.FlowStyle
		if missingFields["parser.timezone"] {
			addScalarField(valueNode, "timezone", "Local", "Zone used to resolve expressions (IANA name or Local)")
		}
		if missingFields["parser.format"] {
			addScalarField(valueNode, "format", FormatRFC3339, "Output format: rfc3339 | unix | rfc1123 | ctime | iso")
		}
	}
}

// addScalarField appends key: value with a head comment unless key exists
func addScalarField(mapping *yaml.Node, key, value, comment string) {
	for i := 0; i < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return
		}
	}

	keyNode := &yaml.Node{
		Kind:        yaml.ScalarNode,
		Value:       key,
		HeadComment: comment,
	}
	valueNode := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Value: value,
	}

	mapping.Content = append(mapping.Content, keyNode, valueNode)
}

// detectMissingOptionalSections compares config against the template structure
// to find missing top-level optional sections. The template is generated from
// the Config struct, so new sections are picked up without changes here.
func detectMissingOptionalSections(raw map[string]interface{}) []string {
	var missing []string

	templateData, err := GenerateExampleConfig()
	if err != nil {
		return missing
	}

	var templateRaw map[string]interface{}
	if err := yaml.Unmarshal(templateData, &templateRaw); err != nil {
		return missing
	}

	// Handled by the migration itself, or optional scalars that
	// should not be filled in with example values.
	skip := map[string]bool{
		"version":  true,
		"parser":   true,
		"requires": true,
	}

	for _, key := range sortedKeys(templateRaw) {
		if skip[key] {
			continue
		}
		if _, exists := raw[key]; !exists {
			missing = append(missing, key)
		}
	}

	return missing
}

// ApplyOptionalSections adds missing optional sections from the template to user's config
func ApplyOptionalSections(userConfig []byte, missingSections []string) ([]byte, error) {
	if len(missingSections) == 0 {
		return userConfig, nil
	}

	templateData, err := GenerateExampleConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to generate template: %w", err)
	}

	var userRaw map[string]interface{}
	if err := yaml.Unmarshal(userConfig, &userRaw); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}
	if userRaw == nil {
		userRaw = map[string]interface{}{}
	}

	var templateRaw map[string]interface{}
	if err := yaml.Unmarshal(templateData, &templateRaw); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	for _, section := range missingSections {
		if value, exists := templateRaw[section]; exists {
			userRaw[section] = value
		}
	}

	result, err := yaml.Marshal(userRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return result, nil
}

// VersionValidator validates that a config matches its declared version
type VersionValidator func(raw map[string]interface{}) error

// versionValidators maps version numbers to their validation functions
var versionValidators = map[int]VersionValidator{
	0: validateV0Config,
	1: validateV1Config,
}

// validateConfigVersion validates that the config structure matches its declared version
func validateConfigVersion(raw map[string]interface{}, version int) error {
	validator, exists := versionValidators[version]
	if !exists {
		return nil
	}
	return validator(raw)
}

// validateV0Config validates v0 (legacy) config structure
// V0 configs keep parser settings as flat top-level keys
func validateV0Config(raw map[string]interface{}) error {
	if parser, ok := raw["parser"]; ok {
		if _, isMap := parser.(map[string]interface{}); !isMap {
			return fmt.Errorf("v0 config has a 'parser' key that is not a section")
		}
	}
	return nil
}

// validateV1Config validates v1 config structure
func validateV1Config(raw map[string]interface{}) error {
	for _, field := range LegacyFields {
		if _, found := lookupPath(raw, field.OldPath); found && !strings.Contains(field.OldPath, ".") {
			return fmt.Errorf("v1 config has legacy top-level key %q; use %s", field.OldPath, field.NewPath)
		}
	}
	return nil
}

// migrateV0ToV1 migrates config from v0 (no version) to v1
// Changes:
// - Moves the flat keys in LegacyFields into the parser and history sections
// - Drops the database section once it is empty
// - Adds parser.timezone and parser.format with defaults when absent
func migrateV0ToV1(raw map[string]interface{}, summary *MigrationSummary) error {
	for _, field := range LegacyFields {
		value, found := lookupPath(raw, field.OldPath)
		if !found {
			continue
		}
		deletePath(raw, field.OldPath)
		if _, exists := lookupPath(raw, field.NewPath); !exists {
			if err := setPath(raw, field.NewPath, value); err != nil {
				return err
			}
		}
		summary.HasDeprecatedFields = true
		summary.DeprecatedFields = append(summary.DeprecatedFields,
			fmt.Sprintf("%s (moved to %s)", field.OldPath, field.NewPath))
	}

	if db, ok := raw["database"].(map[string]interface{}); ok && len(db) == 0 {
		delete(raw, "database")
	}

	if _, ok := raw["parser"]; !ok {
		raw["parser"] = map[string]interface{}{}
	}
	for _, path := range []string{"parser.timezone", "parser.format"} {
		if _, found := lookupPath(raw, path); !found {
			summary.MissingFields = append(summary.MissingFields, path)
		}
	}

	return nil
}

func lookupPath(raw map[string]interface{}, path string) (interface{}, bool) {
	keys := strings.Split(path, ".")
	current := raw
	for i, key := range keys {
		value, ok := current[key]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return value, true
		}
		next, isMap := value.(map[string]interface{})
		if !isMap {
			return nil, false
		}
		current = next
	}
	return nil, false
}

func deletePath(raw map[string]interface{}, path string) {
	keys := strings.Split(path, ".")
	current := raw
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return
		}
		current = next
	}
	delete(current, keys[len(keys)-1])
}

func setPath(raw map[string]interface{}, path string, value interface{}) error {
	keys := strings.Split(path, ".")
	current := raw
	for _, key := range keys[:len(keys)-1] {
		next, exists := current[key]
		if !exists {
			section := map[string]interface{}{}
			current[key] = section
			current = section
			continue
		}
		section, ok := next.(map[string]interface{})
		if !ok {
			return fmt.Errorf("cannot move value to %s: %q is not a section", path, key)
		}
		current = section
	}
	current[keys[len(keys)-1]] = value
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
