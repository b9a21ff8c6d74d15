package types

import "fmt"

// CustomError carries an HTTP status and error type out of middleware and
// handlers to the global error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewCustomError builds a CustomError
func NewCustomError(code int, errorType, format string, args ...any) *CustomError {
	return &CustomError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    errorType,
	}
}
