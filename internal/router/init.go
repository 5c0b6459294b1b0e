package router

import (
	"github.com/creamio/backoffice-api/internal/application"
	"github.com/creamio/backoffice-api/internal/container"
	handlers "github.com/creamio/backoffice-api/internal/interface/http"
	usermodule "github.com/creamio/backoffice-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	service := application.NewService(
		container.GetUserRepository(),
		container.GetTokenRepository(),
		container.GetLogger(),
		container.GetConfig().Location(),
	)
	handler := handlers.NewUserHandler(service, container.GetLogger())
	r.Add(usermodule.New(handler))
}
