package http

import (
	"strconv"

	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	httpError "wallet-service/src/pkg/http-error"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletController struct {
	Log            log.Log
	UseCase        *usecase.WalletUseCase
	RequestUseCase *usecase.FundsRequestUseCase
}

func NewWalletController(useCase *usecase.WalletUseCase, requestUseCase *usecase.FundsRequestUseCase, logger log.Log) *WalletController {
	return &WalletController{
		Log:            logger,
		UseCase:        useCase,
		RequestUseCase: requestUseCase,
	}
}

func (c *WalletController) GetBalance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.GetBalanceRequest{
		UserID: auth.UserID,
	}
	result := c.UseCase.GetBalance(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Wallet Balance", fiber.StatusOK, ctx)
}

func (c *WalletController) CheckBalance(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	amount, err := strconv.ParseInt(ctx.Query("amount"), 10, 64)
	if err != nil {
		errObj := httpError.NewBadRequest()
		errObj.Message = "amount must be an integer"
		return utils.ResponseError(errObj, ctx)
	}

	request := &model.BalanceCheckRequest{
		UserID:    auth.UserID,
		AmountSpy: amount,
	}
	result := c.UseCase.ValidateSufficientBalance(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Balance Check", fiber.StatusOK, ctx)
}

func (c *WalletController) SubmitRequest(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.SubmitFundsRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("WalletController.SubmitRequest", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.UserID = auth.UserID

	result := c.RequestUseCase.Submit(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Funds Request Submitted", fiber.StatusCreated, ctx)
}
