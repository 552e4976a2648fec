package utils

const (
	// UserKey is the gin context key holding the authenticated user.
	UserKey = "currentUser"

	// TraceIdKey is the gin context key holding the request trace ID.
	TraceIdKey = "traceId"

	// SanitizedPayloadKey is the gin context key holding the bound and
	// sanitized request body.
	SanitizedPayloadKey = "sanitizedPayload"
)
