package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	defs, _ := schema["$defs"].(map[string]any)
	root := resolveRef(schema, defs)
	if unknown := unknownFields("", configMap, root, defs); len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("fields missing from schema: %s", strings.Join(unknown, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// unknownFields walks config values and reports keys the schema doesn't describe
func unknownFields(prefix string, values, node map[string]any, defs map[string]any) []string {
	props, _ := node["properties"].(map[string]any)
	if props == nil {
		return nil
	}

	var res []string
	for key, val := range values {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		prop, ok := props[key].(map[string]any)
		if !ok {
			res = append(res, path)
			continue
		}
		if nested, ok := val.(map[string]any); ok {
			res = append(res, unknownFields(path, nested, resolveRef(prop, defs), defs)...)
		}
	}
	return res
}

// resolveRef follows a local "#/$defs/Name" reference if the node has one
func resolveRef(node, defs map[string]any) map[string]any {
	ref, ok := node["$ref"].(string)
	if !ok {
		return node
	}
	name := strings.TrimPrefix(ref, "#/$defs/")
	if def, ok := defs[name].(map[string]any); ok {
		return def
	}
	return node
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Source.Slug == "" {
		return fmt.Errorf("source.slug is required")
	}
	if cfg.Source.APIURL == "" {
		return fmt.Errorf("source.api_url is required")
	}
	if cfg.Feed.OutputDir == "" {
		return fmt.Errorf("feed.output_dir is required")
	}
	if cfg.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
