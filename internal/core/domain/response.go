package domain

// MetadataErrorsKey is the metadata entry holding structured error messages.
const MetadataErrorsKey = "errors"

// Envelope is the response wrapper every endpoint answers with.
type Envelope[T any] struct {
	Success  bool                `json:"success"`
	Data     *T                  `json:"data"`
	Message  string              `json:"message"`
	Metadata map[string][]string `json:"metadata,omitempty"`
}

// FirstError returns the first structured error message, if any.
func (e *Envelope[T]) FirstError() (string, bool) {
	if e == nil || e.Metadata == nil {
		return "", false
	}
	errs := e.Metadata[MetadataErrorsKey]
	if len(errs) == 0 {
		return "", false
	}
	return errs[0], true
}
