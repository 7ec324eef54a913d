package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/sandevgo/intake/internal/core"
)

//go:embed defaults.json
var defaultsJSON []byte

var importSchema = map[string]interface{}{
	"type":     "array",
	"minItems": 1,
	"items": map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"question", "answer", "language"},
		"properties": map[string]interface{}{
			"category": map[string]interface{}{"type": "string"},
			"question": map[string]interface{}{"type": "string", "minLength": 1},
			"answer":   map[string]interface{}{"type": "string", "minLength": 1},
			"language": map[string]interface{}{"type": "string", "enum": []interface{}{"en", "ko", "zh"}},
			"tags": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
	},
}

// Parse validates a JSON knowledge document and decodes it in file order.
func Parse(data []byte) ([]core.KnowledgeItem, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid knowledge json: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(importSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("knowledge validation failed: %v", errs)
	}

	var items []core.KnowledgeItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge: %w", err)
	}
	return items, nil
}

// ParseYAML accepts the same document written as YAML.
func ParseYAML(data []byte) ([]core.KnowledgeItem, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid knowledge yaml: %w", err)
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid knowledge yaml: %w", err)
	}
	return Parse(asJSON)
}

// Defaults returns the built-in knowledge entries for every language.
func Defaults() []core.KnowledgeItem {
	items, err := Parse(defaultsJSON)
	if err != nil {
		panic(fmt.Sprintf("built-in knowledge is invalid: %v", err))
	}
	return items
}
