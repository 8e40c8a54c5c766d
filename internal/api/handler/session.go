package handler

import (
	"errors"

	"spigot/internal/models"
	"spigot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSession struct {
	container *do.Injector
}

type sessionRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// Create issues a server-signed session token for the given identity and
// creates the user on first sight.
func (gr *groupSession) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Validation))
	}

	if req.UserID == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("user id is required"), errorx.Validation))
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	user, err := serviceUser.FindOrCreateUser(ctx, &models.UserFromAuth{
		ID:       req.UserID,
		Username: req.Username,
	})
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	authentication, err := do.Invoke[*services.Authentication](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	token, err := authentication.CreateToken(user)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"token": token,
		"user":  user,
	}, nil)
}
