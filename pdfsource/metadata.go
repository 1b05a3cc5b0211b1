package pdfsource

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/tsawler/vitae/model"
)

// EmbeddedProducer is the producer name of documents that carry their resume
// as JSON in the Subject field.
const EmbeddedProducer = "cv---maker"

// embeddedPayload is the Subject JSON of a document from EmbeddedProducer
type embeddedPayload struct {
	Resume            model.Resume       `json:"resume"`
	PrivacyStatements model.PrivacyFlags `json:"privacyStatements"`
}

// HasEmbeddedResume reports whether doc claims to carry an embedded resume.
func HasEmbeddedResume(doc *Document) bool {
	return doc != nil && doc.Producer == EmbeddedProducer && strings.TrimSpace(doc.Subject) != ""
}

// EmbeddedResume decodes the resume embedded in doc. ok is false when the
// document carries none. Fields are matched by their JSON names and scalar
// types are converted leniently; missing lists come back empty.
func EmbeddedResume(doc *Document) (result *model.ParseResult, ok bool, err error) {
	if !HasEmbeddedResume(doc) {
		return nil, false, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(doc.Subject), &raw); err != nil {
		return nil, false, fmt.Errorf("pdfsource: embedded resume: %w", err)
	}
	if _, found := raw["resume"]; !found {
		return nil, false, nil
	}

	var payload embeddedPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &payload,
	})
	if err != nil {
		return nil, false, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, false, fmt.Errorf("pdfsource: embedded resume: %w", err)
	}

	payload.Resume.Normalize()
	return &model.ParseResult{Resume: payload.Resume, Privacy: payload.PrivacyStatements}, true, nil
}
