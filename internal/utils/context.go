package utils

import (
	"context"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"
const ContextRequestIDKey contextKey = "requestID"

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(ContextUserIDKey).(uint)
	return userID, ok
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(ContextRequestIDKey).(string)
	return requestID, ok
}
