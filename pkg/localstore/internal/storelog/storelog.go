package storelog

import (
	"fmt"

	"go.uber.org/zap"
)

// headMsg is a distinctive part of all messages.
const headMsg = "local store operation"

// Write writes message about a local store operation to logger.
func Write(logger *zap.Logger, fields ...zap.Field) {
	logger.Debug(headMsg, fields...)
}

// KeyField returns logger's field for a store key.
func KeyField(key fmt.Stringer) zap.Field {
	return zap.Stringer("key", key)
}

// OpField returns logger's field for operation type.
func OpField(op string) zap.Field {
	return zap.String("op", op)
}

// ContextField returns logger's field for the caller-supplied diagnostic
// label.
func ContextField(context string) zap.Field {
	return zap.String("context", context)
}
