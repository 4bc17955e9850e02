package gateway

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/andrescamacho/spaceshard-go/internal/domain/shared"
)

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

// bodySchemas validates PUT bodies before they are decoded into requests
type bodySchemas struct {
	player *jsonschema.Schema
	unit   *jsonschema.Schema
}

func compileSchemas() (*bodySchemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true
	compile := func(name string) (*jsonschema.Schema, error) {
		data, err := schemaFiles.ReadFile("schemas/" + name)
		if err != nil {
			return nil, err
		}
		if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
		}
		return compiler.Compile(name)
	}
	player, err := compile("player.schema.json")
	if err != nil {
		return nil, err
	}
	unit, err := compile("unit.schema.json")
	if err != nil {
		return nil, err
	}
	return &bodySchemas{player: player, unit: unit}, nil
}

// decode validates body against schema, then unmarshals it into dst
func decode(schema *jsonschema.Schema, body io.Reader, dst interface{}) error {
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return shared.NewInvalidRequestError("failed to read body")
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return shared.NewInvalidRequestError("body is not valid JSON")
	}
	if err := schema.Validate(doc); err != nil {
		return shared.NewInvalidRequestError(err.Error())
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return shared.NewInvalidRequestError(err.Error())
	}
	return nil
}
