package api

import (
	"context"
	"errors"
)

type keyType string

const (
	requestIDKey    keyType = "requestID"
	adminSubjectKey keyType = "adminSubject"
)

func ctxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func ctxGetRequestID(ctx context.Context) (string, error) {
	return ctxGetStringValue(ctx, requestIDKey)
}

// ctxWithAdminSubject records the subject claim of the admin token
func ctxWithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, adminSubjectKey, subject)
}

func ctxGetAdminSubject(ctx context.Context) (string, error) {
	return ctxGetStringValue(ctx, adminSubjectKey)
}

// ctxGetStringValue is a helper function to retrieve string values from the context by key
func ctxGetStringValue(ctx context.Context, key keyType) (string, error) {
	if ctxValue := ctx.Value(key); ctxValue == nil {
		return "", errors.New("key not found in context")
	} else if valueAsString, ok := ctxValue.(string); !ok {
		return "", errors.New("value is not of type `string`")
	} else {
		return valueAsString, nil
	}
}
