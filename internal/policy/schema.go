package policy

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaURL is the fixed id of the embedded schema. It keeps local paths out
// of validation errors.
const schemaURL = "https://w3id.org/idsa/connector/permission.schema.json"

//go:embed permission.schema.json
var permissionSchema []byte

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(schemaURL, bytes.NewReader(permissionSchema)); err != nil {
		return nil, fmt.Errorf("failed to add permission schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile permission schema: %w", err)
	}
	return schema, nil
}
