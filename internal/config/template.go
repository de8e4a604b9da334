package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// GenerateExampleConfig creates an example configuration with helpful comments
func GenerateExampleConfig() ([]byte, error) {
	exampleConfig := Config{
		Version:  CurrentConfigVersion,
		Requires: ">= 0.1.0",
		Parser: ParserConfig{
			Timezone: "Local",
			Format:   FormatRFC3339,
		},
		History: HistoryConfig{
			Enabled:   true,
			Path:      "~/.getdate/history.db",
			Retention: "30d",
		},
		Compare: CompareConfig{
			Engines: append([]string(nil), Engines...),
		},
	}

	var node yaml.Node
	if err := node.Encode(exampleConfig); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	addConfigComments(&node)

	result, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return result, nil
}

// addConfigComments adds helpful comments to the configuration structure
func addConfigComments(node *yaml.Node) {
	if node.Kind != yaml.MappingNode || len(node.Content) == 0 {
		return
	}

	node.HeadComment = "getdate configuration\nEvery section is optional; missing values fall back to the defaults shown here."

	for i := 0; i < len(node.Content); i += 2 {
		keyNode := node.Content[i]

		switch keyNode.Value {
		case "requires":
			keyNode.HeadComment = "Refuse to run on getdate builds outside this version constraint (optional)"
		case "parser":
			keyNode.HeadComment = "Expression resolution\ntimezone: IANA name such as Europe/Berlin, or Local\nformat: rfc3339 | unix | rfc1123 | ctime | iso"
		case "history":
			keyNode.HeadComment = "Parse history stored in SQLite (optional)\nretention accepts units up to weeks: 30d, 2w, 720h"
		case "compare":
			keyNode.HeadComment = "Engines shown next to getdate by `getdate compare` (optional)"
		}
	}
}
