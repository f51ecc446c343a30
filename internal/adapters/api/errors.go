package api

import "fmt"

// NotFoundError reports a FIO endpoint answering 204 No Content, which is how
// the API signals an unknown entity.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

// NotAuthenticatedError reports a 401 from the FIO API, usually a missing or
// expired API key.
type NotAuthenticatedError struct {
	Path string
}

func (e *NotAuthenticatedError) Error() string {
	return fmt.Sprintf("not authenticated for %s (check the FIO API key)", e.Path)
}
