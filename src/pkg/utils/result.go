package utils

// Result is the envelope every usecase returns to the delivery layer.
// Error carries either an http-error object or a plain error.
type Result struct {
	Data  interface{}
	Error interface{}
}
