package utils

import (
	"log"
	"strings"
)

// LogEvent emits one structured service-event line. Keep message to a short
// summary; never log payload bodies or credentials.
func LogEvent(requestID, module, action, message string) {
	log.Printf("event module=%s action=%s request_id=%s %s",
		strings.ToLower(module), action, strings.TrimSpace(requestID), message)
}
