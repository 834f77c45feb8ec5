package jsonfile

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaSource string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema describing the task list file.
func Schema() string {
	return schemaSource
}

func taskListSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("tasks.schema.json", schemaSource)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded JSON value against the task list schema
// and reports every violation with its location in the document.
func validateDocument(doc interface{}) error {
	schema, err := taskListSchema()
	if err != nil {
		return fmt.Errorf("compile task list schema: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var problems []string
	collectSchemaErrors(ve, &problems)
	return &SchemaError{Problems: problems}
}

func collectSchemaErrors(err *jsonschema.ValidationError, problems *[]string) {
	if len(err.Causes) == 0 {
		*problems = append(*problems, fmt.Sprintf("%s: %s", instancePath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, problems)
	}
}

func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}

// SchemaError lists the places where a task list file departs from the expected shape.
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return "task list does not match schema: " + strings.Join(e.Problems, "; ")
}
