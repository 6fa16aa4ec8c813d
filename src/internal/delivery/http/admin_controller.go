package http

import (
	"wallet-service/src/internal/delivery/http/middleware"
	"wallet-service/src/internal/model"
	"wallet-service/src/internal/usecase"
	"wallet-service/src/pkg/log"
	"wallet-service/src/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	Log            log.Log
	RequestUseCase *usecase.FundsRequestUseCase
	WalletUseCase  *usecase.WalletUseCase
}

func NewAdminController(requestUseCase *usecase.FundsRequestUseCase, walletUseCase *usecase.WalletUseCase, logger log.Log) *AdminController {
	return &AdminController{
		Log:            logger,
		RequestUseCase: requestUseCase,
		WalletUseCase:  walletUseCase,
	}
}

func (c *AdminController) ListRequests(ctx *fiber.Ctx) error {
	request := &model.ListFundsRequest{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
	}

	result := c.RequestUseCase.List(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Funds Requests", fiber.StatusOK, ctx)
}

func (c *AdminController) ApproveRequest(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := &model.ApproveFundsRequest{
		RequestID: ctx.Params("id"),
		AdminID:   auth.UserID,
	}
	result := c.RequestUseCase.Approve(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Funds Request Approved", fiber.StatusOK, ctx)
}

func (c *AdminController) RejectRequest(ctx *fiber.Ctx) error {
	auth := middleware.GetUser(ctx)

	request := new(model.RejectFundsRequest)
	if err := ctx.BodyParser(request); err != nil {
		c.Log.Error("AdminController.RejectRequest", "Failed to parse request body", "error", err.Error())
		return utils.ResponseError(err, ctx)
	}
	request.RequestID = ctx.Params("id")
	request.AdminID = auth.UserID

	result := c.RequestUseCase.Reject(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Funds Request Rejected", fiber.StatusOK, ctx)
}

func (c *AdminController) UserLedger(ctx *fiber.Ctx) error {
	request := &model.LedgerListRequest{
		UserID: ctx.Params("userId"),
		Page:   ctx.QueryInt("page", 1),
		Limit:  ctx.QueryInt("limit", 20),
	}

	result := c.WalletUseCase.Ledger(ctx.Context(), request)
	if result.Error != nil {
		return utils.ResponseError(result.Error, ctx)
	}

	return utils.Response(result.Data, "Wallet Ledger", fiber.StatusOK, ctx)
}
