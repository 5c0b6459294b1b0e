package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/creamio/backoffice-api/internal/container"
	handlers "github.com/creamio/backoffice-api/internal/interface/http"
	"github.com/creamio/backoffice-api/internal/interface/middleware"
)

// Module wires the user HTTP handlers into routes.
// Public: POST /admin/api/login
// Token-protected: the /admin/api/users CRUD surface.
type Module struct {
	Handler *handlers.UserHandler
}

func New(h *handlers.UserHandler) *Module {
	return &Module{Handler: h}
}

func (m *Module) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()) // 10 req/min per IP
	rg.POST("/login", loginLimiter, m.Handler.Login)

	users := rg.Group("/users")
	users.Use(middleware.Auth(
		container.GetUserRepository(),
		container.GetTokenRepository(),
		rdb,
		container.GetConfig().APITokenTTL,
	))
	users.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		users.POST("", m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/:id", m.Handler.Get)
		users.PATCH("/:id", m.Handler.Patch)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
