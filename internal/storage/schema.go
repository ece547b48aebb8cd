package storage

import (
	_ "embed"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

//go:embed collection.schema.json
var collectionSchemaSource string

var collectionSchema = jsonschema.MustCompileString("collection.schema.json", collectionSchemaSource)

// decodeCollection parses data as a task collection. The raw document is
// checked against the collection schema first so that objects missing
// either field are rejected instead of decoding to zero values.
func decodeCollection(data []byte) ([]models.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if err := collectionSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating schema: %w", err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
