package utils

import (
	httpError "wallet-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

type BaseResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

// Response writes a success envelope.
func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(BaseResponse{
		Success: true,
		Message: message,
		Code:    code,
		Data:    data,
	})
}

// ResponseError writes a failure envelope from either an http-error object
// or a plain error.
func ResponseError(err interface{}, ctx *fiber.Ctx) error {
	switch e := err.(type) {
	case httpError.CommonError:
		return ctx.Status(e.ResponseCode).JSON(BaseResponse{
			Success: false,
			Message: e.Message,
			Code:    e.ResponseCode,
		})
	case *httpError.CommonError:
		return ctx.Status(e.ResponseCode).JSON(BaseResponse{
			Success: false,
			Message: e.Message,
			Code:    e.ResponseCode,
		})
	case error:
		return ctx.Status(fiber.StatusBadRequest).JSON(BaseResponse{
			Success: false,
			Message: e.Error(),
			Code:    fiber.StatusBadRequest,
		})
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(BaseResponse{
			Success: false,
			Message: "internal server error",
			Code:    fiber.StatusInternalServerError,
		})
	}
}
