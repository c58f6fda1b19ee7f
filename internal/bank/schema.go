package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON schema for a bank document. It pins down the
// module/chapter/section skeleton while leaving question entries loose:
// their field-level variance is the normalizer's job, and tightening the
// schema would reject historical exports that still load fine.
var bankSchema = map[string]any{
	"type": "object",
	"patternProperties": map[string]any{
		"_MODULES$": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"chapters": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":    map[string]any{"type": "string"},
							"title": map[string]any{"type": "string"},
							"sections": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"title": map[string]any{"type": "string"},
										"questions": map[string]any{
											"type": "array",
											"items": map[string]any{
												"type": "object",
												"properties": map[string]any{
													"question_id": map[string]any{"type": "string"},
													"type":        map[string]any{"type": "string"},
													"level": map[string]any{
														"type":    "integer",
														"minimum": 1,
														"maximum": 3,
													},
												},
												"required": []any{"question_id"},
											},
										},
									},
									"required": []any{"questions"},
								},
							},
						},
						"required": []any{"id", "title", "sections"},
					},
				},
			},
			"required": []any{"chapters"},
		},
	},
}

var (
	compiledSchema     *jsonschema.Schema
	compileSchemaOnce  sync.Once
	compileSchemaError error
)

// ValidateDocument checks a bank document against the schema before any
// normalization runs. It reports structural problems with JSON-pointer
// locations, which the CLI's validate command prints verbatim.
func ValidateDocument(data []byte) error {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema compiles the bank schema once and caches it.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw
		// bytes. Marshal then unmarshal to get a clean representation.
		defBytes, err := json.Marshal(bankSchema)
		if err != nil {
			compileSchemaError = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileSchemaError = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://question-bank.json"
		if err := c.AddResource(schemaURL, defParsed); err != nil {
			compileSchemaError = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaError = c.Compile(schemaURL)
	})
	return compiledSchema, compileSchemaError
}
