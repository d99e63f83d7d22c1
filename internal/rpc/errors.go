// File: internal/rpc/errors.go
package rpc

import (
	"errors"
	"net/http"

	"github.com/iyunix/go-chat/internal/services/chat"
)

// Transport-level codes. Domain codes come from the chat package.
const (
	CodeMethodNotFound = "METHOD_NOT_FOUND"
	CodeParseError     = "PARSE_ERROR"
)

// ErrorBody is the structured error carried in a response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(err error) *ErrorBody {
	code := chat.CodeOf(err)
	var chatErr *chat.Error
	if errors.As(err, &chatErr) {
		return &ErrorBody{Code: string(code), Message: chatErr.Message}
	}
	return &ErrorBody{Code: string(code), Message: "internal error"}
}

func statusFor(code string) int {
	switch code {
	case "":
		return http.StatusOK
	case string(chat.CodeUnauthorized):
		return http.StatusUnauthorized
	case string(chat.CodeForbidden):
		return http.StatusForbidden
	case string(chat.CodeNotFound):
		return http.StatusNotFound
	case string(chat.CodeValidation), CodeMethodNotFound, CodeParseError:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
