package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema pins the shape JSON(doc) must produce, so a change to
// the render package that silently breaks the CLI's JSON output is caught
// in tests rather than by a downstream consumer.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "auparse.Document",
  "type": "object",
  "required": ["pattern"],
  "properties": {
    "pattern": {"type": "string"},
    "line": {"type": "integer"},
    "cmd": {"type": "string"},
    "error": {"type": "string"},
    "tree": {"type": "array", "items": {"$ref": "#/definitions/node"}},
    "result": {"type": "array", "items": {"$ref": "#/definitions/expansion"}}
  },
  "definitions": {
    "token": {
      "type": "object",
      "required": ["type", "value"],
      "properties": {
        "type": {"type": "string"},
        "value": {"type": "string"}
      }
    },
    "expansion": {
      "type": "object",
      "required": ["pattern", "tokens"],
      "properties": {
        "pattern": {"type": "string"},
        "tokens": {"type": "array", "items": {"$ref": "#/definitions/token"}}
      }
    },
    "node": {
      "type": "object",
      "properties": {
        "tokens": {"type": "array", "items": {"$ref": "#/definitions/token"}},
        "groups": {
          "type": "array",
          "items": {"type": "array", "items": {"$ref": "#/definitions/node"}}
        }
      }
    }
  }
}`

const schemaResourceURL = "mem://auparse/document.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResourceURL, bytes.NewReader([]byte(documentSchema))); err != nil {
			compileErr = fmt.Errorf("render: loading document schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaResourceURL)
	})
	return compiled, compileErr
}

// ValidateJSON checks encoded (the output of JSON(doc)) against the
// Document schema, for use in tests that guard the CLI's JSON contract.
func ValidateJSON(encoded []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(encoded, &v); err != nil {
		return fmt.Errorf("render: decoding document for validation: %w", err)
	}
	return schema.Validate(v)
}
