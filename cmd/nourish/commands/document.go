package commands

import (
	"encoding/json"
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var errInvalidDocument = zerr.New("invalid document")

// readDocument decodes a JSON or YAML file into out using out's JSON field names.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read document"), "path", path)
	}

	// YAML is a superset of JSON, so one decoder covers both.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(errInvalidDocument, err.Error()), "path", path)
	}
	if doc == nil {
		return zerr.With(zerr.Wrap(errInvalidDocument, "document is empty"), "path", path)
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return zerr.With(zerr.Wrap(errInvalidDocument, err.Error()), "path", path)
	}
	if err := json.Unmarshal(normalized, out); err != nil {
		return zerr.With(zerr.Wrap(errInvalidDocument, err.Error()), "path", path)
	}
	return nil
}
