package utils

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func GenerateTraceId() string {
	return uuid.New().String()
}

func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	default:
		entry.Info(message)
	}
}

// LogEntryWithTrace logs a message under an already known trace ID.
// Useful from goroutines that outlive the originating request context.
func LogEntryWithTrace(traceId, level, message string) {
	LogEntry(log.WithFields(log.Fields{"traceId": traceId}), level, message)
}

// LogMessageWithFields logs a message enriched with the trace ID of the
// current request, when one is present on the context.
func LogMessageWithFields(ctx context.Context, level, message string) {
	fields := log.Fields{}
	if traceId, ok := ctx.Value(TraceIdKey).(string); ok {
		fields["traceId"] = traceId
	}

	LogEntry(log.WithFields(fields), level, message)
}
