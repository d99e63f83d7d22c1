// File: internal/services/ai/errors.go
package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig        ErrorType = "CONFIG"
	ErrTypeNetwork       ErrorType = "NETWORK"
	ErrTypeProvider      ErrorType = "PROVIDER"
	ErrTypeRateLimit     ErrorType = "RATE_LIMIT"
	ErrTypeEmptyResponse ErrorType = "EMPTY_RESPONSE"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Model     string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeProvider, Operation: operation, Message: msg, Cause: cause}
}

func NewEmptyResponseError(operation, model string) *AIError {
	return &AIError{Type: ErrTypeEmptyResponse, Operation: operation, Model: model, Message: "empty response"}
}

// statusError classifies a non-200 HTTP answer.
func statusError(operation, model string, status int, body string) *AIError {
	errType := ErrTypeProvider
	if status == 429 {
		errType = ErrTypeRateLimit
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return &AIError{
		Type:      errType,
		Code:      status,
		Model:     model,
		Operation: operation,
		Message:   fmt.Sprintf("status %d: %s", status, body),
	}
}
