package handler

import (
	"spigot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupBalance struct {
	container *do.Injector
}

type balanceRequest struct {
	UserID string `json:"userId"`
}

// Show is a public read: the user id comes from the body, falling back to
// the session when one is present.
func (gr *groupBalance) Show(c echo.Context) error {
	ctx := c.Request().Context()

	var req balanceRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	userID := req.UserID
	if userID == "" {
		if user, err := ResolveValidUser(ctx, gr.container); err == nil {
			userID = user.ID
		}
	}

	serviceBalance, err := do.Invoke[*services.ServiceBalance](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	summary, err := serviceBalance.GetBalance(ctx, userID)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, summary, nil)
}
