package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults match schema", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(Default()))
	})

	t.Run("missing dsn", func(t *testing.T) {
		cfg := Default()
		cfg.Database.DSN = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.dsn is required")
	})
}

func TestUnknownFields(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	defs, _ := schema["$defs"].(map[string]any)
	root := resolveRef(schema, defs)

	values := map[string]any{
		"digest": map[string]any{"threshold": 100, "surprise": 1},
		"extra":  "value",
	}
	unknown := unknownFields("", values, root, defs)
	assert.ElementsMatch(t, []string{"digest.surprise", "extra"}, unknown)
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid default config", modify: func(*Config) {}},
		{name: "missing slug", modify: func(c *Config) { c.Source.Slug = "" }, wantErr: true, errMsg: "source.slug is required"},
		{name: "missing api url", modify: func(c *Config) { c.Source.APIURL = "" }, wantErr: true, errMsg: "source.api_url is required"},
		{name: "missing output dir", modify: func(c *Config) { c.Feed.OutputDir = "" }, wantErr: true, errMsg: "feed.output_dir is required"},
		{name: "missing model", modify: func(c *Config) { c.LLM.Model = "" }, wantErr: true, errMsg: "llm.model is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := validateRequiredFields(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	schemaStr := string(data)
	assert.Contains(t, schemaStr, "Config")
	assert.Contains(t, schemaStr, "digest")
	assert.Contains(t, schemaStr, "page_size")
	assert.Contains(t, schemaStr, "extraction")
}
