package warmlib

import (
	"errors"
	"fmt"
)

var ErrPollFetch = errors.New("failed to check warming prediction status")

// StatusError is returned when the warm creation or status-poll request
// came back with a non-success HTTP status code.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("warming request failed with status code %d", e.Code)
}

// PredictionFailedError is returned when the prediction resource reaches
// the failed terminal state. Message carries the error reported by the
// inference service, if any.
type PredictionFailedError struct {
	Message string
}

func (e *PredictionFailedError) Error() string {
	if e.Message == "" {
		return "warming prediction failed"
	}
	return e.Message
}
