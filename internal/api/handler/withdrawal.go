package handler

import (
	"strconv"

	"spigot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupWithdrawal struct {
	container *do.Injector
}

type withdrawalRequest struct {
	Amount        float64 `json:"amount"`
	WalletAddress string  `json:"walletAddress"`
	Currency      string  `json:"currency"`
}

func (gr *groupWithdrawal) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req withdrawalRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	withdrawal, err := serviceWithdrawal.RequestWithdrawal(ctx, user, req.Amount, req.WalletAddress, req.Currency)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"message":       "withdrawal processed",
		"reference":     withdrawal.Reference,
		"status":        withdrawal.Status,
		"transactionId": withdrawal.TransactionID,
	}, nil)
}

func (gr *groupWithdrawal) List(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	limit := 20
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
		if limit <= 0 || limit > 100 {
			limit = 20
		}
	}

	offset := 0
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, _ = strconv.Atoi(offsetStr)
		if offset < 0 {
			offset = 0
		}
	}

	serviceWithdrawal, err := do.Invoke[*services.ServiceWithdrawal](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	withdrawals, err := serviceWithdrawal.ListWithdrawals(ctx, user.ID, limit, offset)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, withdrawals, nil)
}
