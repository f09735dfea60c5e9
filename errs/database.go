package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
)

// Key-value storage errors
var (
	ErrDeserialization  = errors.New("stored value could not be deserialized")
	ErrStorageRead      = errors.New("storage read failed")
	ErrStorageWrite     = errors.New("storage write failed")
	ErrStorageQuotaFull = errors.New("storage quota full")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDeserializationError reports a value that exists under key but is not
// the expected serialized shape.
func NewDeserializationError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDeserialization,
		Details:    fmt.Sprintf("Value under key %q is not a valid collection", key),
		Cause:      cause,
		Field:      "serialization",
	}
}

func NewStorageReadError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageRead,
		Details:    fmt.Sprintf("Failed to read key %q", key),
		Cause:      cause,
		Field:      "storage",
	}
}

// NewStorageWriteError keeps the status of a quota failure underneath it so
// callers answering HTTP requests can tell the two apart.
func NewStorageWriteError(key string, cause error) *ApiErr {
	status := http.StatusInternalServerError
	if IsStorageQuotaFullError(cause) {
		status = http.StatusInsufficientStorage
	}
	return &ApiErr{
		StatusCode: status,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Failed to write key %q", key),
		Cause:      cause,
		Field:      "storage",
	}
}

func NewStorageQuotaFullError(operation string, limit int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInsufficientStorage,
		err:        ErrStorageQuotaFull,
		Details:    fmt.Sprintf("Storage quota of %d bytes exceeded during %s", limit, operation),
		Field:      "storage",
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDeserializationError(err error) bool {
	return errors.Is(err, ErrDeserialization)
}

func IsStorageReadError(err error) bool {
	return errors.Is(err, ErrStorageRead)
}

func IsStorageWriteError(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}

func IsStorageQuotaFullError(err error) bool {
	return errors.Is(err, ErrStorageQuotaFull)
}
