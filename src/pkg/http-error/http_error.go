package httpError

import "github.com/gofiber/fiber/v2"

// CommonError is the error object usecases hand back to the delivery layer.
// Message is overwritten by the caller with the specific reason.
type CommonError struct {
	ResponseCode int    `json:"code"`
	Message      string `json:"message"`
}

func (e CommonError) Error() string {
	return e.Message
}

func NewBadRequest() CommonError {
	return CommonError{
		ResponseCode: fiber.StatusBadRequest,
		Message:      "bad request",
	}
}

func NewNotFound() CommonError {
	return CommonError{
		ResponseCode: fiber.StatusNotFound,
		Message:      "not found",
	}
}

func NewConflict() CommonError {
	return CommonError{
		ResponseCode: fiber.StatusConflict,
		Message:      "conflict",
	}
}

func NewUnprocessableEntity() CommonError {
	return CommonError{
		ResponseCode: fiber.StatusUnprocessableEntity,
		Message:      "unprocessable entity",
	}
}

func NewInternalServerError() CommonError {
	return CommonError{
		ResponseCode: fiber.StatusInternalServerError,
		Message:      "internal server error",
	}
}
