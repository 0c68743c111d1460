package router

import (
	"github.com/oksasatya/agrosphere-api/internal/container"
	handlers "github.com/oksasatya/agrosphere-api/internal/interface/http"
	"github.com/oksasatya/agrosphere-api/internal/router/modules"
)

// InitModules builds the handlers from c and registers every feature module.
func InitModules(r *Registry, c *container.Container) {
	logger := c.Logger
	cfg := c.Config

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Users, c.JWT, c.Cookies, logger), c))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.Users, logger), c))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(c.Tasks, logger), c))

	collections := make(map[string]*handlers.CollectionHandler, len(c.Collections))
	for name, svc := range c.Collections {
		collections[name] = handlers.NewCollectionHandler(svc, logger)
	}
	r.Add(modules.NewCollectionModule(collections, c))

	r.Add(modules.NewRecoveryModule(handlers.NewRecoveryHandler(c.Recovery, logger), c))
	r.Add(modules.NewAssistantModule(handlers.NewAssistantHandler(c.Assistant, logger), c))
	r.Add(modules.NewMediaModule(handlers.NewMediaHandler(c.Media, handlers.DefaultMaxUploadBytes, logger), c))
	r.Add(modules.NewRealtimeModule(handlers.NewRealtimeHandler(c.Hub, cfg.CORSOrigins(), logger), c))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c))
	}
}
