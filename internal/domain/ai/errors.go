package ai

import "fmt"

// StatusError is a non-success response from the inference service. Detail
// carries the service-provided message when one was present.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("inference service returned status %d", e.Status)
}
