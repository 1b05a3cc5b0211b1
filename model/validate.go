package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema string

// ErrInvalid is returned (wrapped) when a value does not satisfy the schema.
var ErrInvalid = errors.New("schema validation failed")

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
})

// Schema returns the JSON schema describing a serialised ParseResult.
func Schema() string {
	return resumeSchema
}

// Validate checks a ParseResult against the embedded JSON schema.
func Validate(result *ParseResult) error {
	if result == nil {
		return fmt.Errorf("%w: nil result", ErrInvalid)
	}
	return validate(gojsonschema.NewGoLoader(result))
}

// ValidateJSON checks a serialised ParseResult against the embedded schema.
func ValidateJSON(data []byte) error {
	return validate(gojsonschema.NewBytesLoader(data))
}

func validate(doc gojsonschema.JSONLoader) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}

	res, err := schema.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}
