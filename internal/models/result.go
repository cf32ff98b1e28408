package models

// Wire error codes. The vocabulary is fixed so API clients can render a
// precise message per code instead of parsing strings.
const (
	CodeValidationError    = "validation_error"
	CodeConversationExists = "conversation_exists"
	CodeForbidden          = "forbidden"
	CodeConversationClosed = "conversation_closed"
	CodeInvalidTransition  = "invalid_transition"
	CodeAlreadyProcessed   = "already_processed"
	CodeNotFound           = "not_found"
	CodeRPCError           = "rpc_error"
)

// Result is the envelope every operation answers with. Message is safe to
// show end users; Details is for logs and non-production admin responses
// only and must never reach end users.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// OK returns a success envelope.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail returns a failure envelope with a machine-readable code.
func Fail(code, message string) Result {
	return Result{Success: false, Error: code, Message: message}
}
