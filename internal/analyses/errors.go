package analyses

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("analysis not found")

// StatusError is returned for non-2xx backend responses other than 404.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("analysis backend returned %d", e.Code)
	}
	return fmt.Sprintf("analysis backend returned %d: %s", e.Code, e.Body)
}
