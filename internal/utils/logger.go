package utils

import (
	"log"
	"strings"
)

// LogEvent prints one standardized line per domain event (export
// authorized, CSV generated, invoice rendered). Messages are collapsed
// to a single line so values echoed from order data (display numbers,
// product names) cannot split a log record.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	msg := strings.Join(strings.Fields(message), " ")
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, msg)
}
