package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateDispatchID creates a short, human-readable ID for one dispatch.
// Format: {operation}-{payloadName}-{8charHexUUID}
//
// Example:
//   - Input: operation="send", payloadType="*demo.Ping"
//   - Output: "send-Ping-a3f8e2b1"
func GenerateDispatchID(operation, payloadType string) string {
	return operation + "-" + ShortTypeName(payloadType) + "-" + generateShortUUID()
}

// ShortTypeName strips pointer and package prefixes from a type name
//   - "*commands.NavigateRouteCommand" -> "NavigateRouteCommand"
//   - "demo.Ping" -> "Ping"
//   - "string" -> "string"
func ShortTypeName(typeName string) string {
	name := strings.TrimLeft(typeName, "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
