package handler

import (
	"net/http"

	"spigot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🚰")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)

		s := groupSession{cfg.Container}
		routesAPIv1.POST("/session", s.Create)

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated requests.

		t := groupTask{cfg.Container}
		routesAPIv1.GET("/tasks", t.List)
		routesAPIv1.POST("/tasks/complete", t.Complete)

		b := groupBalance{cfg.Container}
		routesAPIv1.POST("/balance", b.Show)

		f := groupFaucet{cfg.Container}
		routesAPIv1.POST("/faucet/claim", f.Claim)

		w := groupWithdrawal{cfg.Container}
		routesAPIv1.POST("/withdrawals", w.Create)
		routesAPIv1.GET("/withdrawals", w.List)

		a := groupActivity{cfg.Container}
		routesAPIv1.GET("/activity", a.Recent)
	}

	return r, nil
}
