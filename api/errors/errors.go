package errors

import (
	"fmt"
	"strings"
)

// MultiErrors collects request validation failures per field so the API can
// report all of them in one response.
type MultiErrors struct {
	Errors map[string][]ErrorInfo
}

type ErrorInfo struct {
	Message  string
	RawError error
}

func NewMultiErrors() *MultiErrors {
	return &MultiErrors{
		Errors: make(map[string][]ErrorInfo),
	}
}

func (e *MultiErrors) Add(field, message string, err error) {
	e.Errors[field] = append(e.Errors[field], ErrorInfo{
		Message:  message,
		RawError: err,
	})
}

func (e *MultiErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

func (e *MultiErrors) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for field, infos := range e.Errors {
		for _, info := range infos {
			parts = append(parts, fmt.Sprintf("%s: %s", field, info.Message))
		}
	}
	return strings.Join(parts, " | ")
}
