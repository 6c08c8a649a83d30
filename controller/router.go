package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"speedrun/app_error"
	"speedrun/config"
	"speedrun/repository"
	"speedrun/service"

	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const actorKey = "actor"

type RouteInfo struct {
	Method        string
	Path          string
	HandlerFunc   gin.HandlerFunc
	Authenticated bool
	RequiredRoles []repository.Role
}

// ActorResolver turns a bearer token into the calling actor.
type ActorResolver interface {
	GetActorFromToken(ctx context.Context, token string) (*service.Actor, error)
}

type PageCache struct {
	Store   persistence.CacheStore
	Expires time.Duration
}

func SetRoutes(r *gin.Engine, services *service.Services, pageCache PageCache, logger *zap.Logger) {
	group := r.Group("/api")
	routes := make([]RouteInfo, 0)
	routes = append(routes, setupGamemodeController(services, pageCache, logger)...)
	routes = append(routes, setupRunController(services, pageCache, logger)...)
	routes = append(routes, setupUserController(services, pageCache, logger, devTokensEnabled())...)
	routes = append(routes, setupBanController(services)...)
	routes = append(routes, setupAnnouncementController(services)...)
	routes = append(routes, setupActivityController(services)...)
	for _, route := range routes {
		handlerfuncs := make([]gin.HandlerFunc, 0)
		if route.Authenticated {
			handlerfuncs = append(handlerfuncs, AuthMiddleware(services.Users, route.RequiredRoles))
		}
		handlerfuncs = append(handlerfuncs, route.HandlerFunc)
		group.Handle(route.Method, route.Path, handlerfuncs...)
	}
}

func devTokensEnabled() bool {
	return !config.IsProduction() && config.Env().EnableDevTokens
}

func bearerToken(c *gin.Context) (string, bool) {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func AuthMiddleware(resolver ActorResolver, roles []repository.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		actor, err := resolver.GetActorFromToken(c.Request.Context(), token)
		if errors.Is(err, app_error.ErrUnauthenticated) {
			c.AbortWithStatusJSON(401, gin.H{"error": "Unauthenticated"})
			return
		}
		if err != nil {
			app_error.Respond(c, err)
			c.Abort()
			return
		}
		if len(roles) > 0 && !actor.HasRole(roles...) {
			c.AbortWithStatusJSON(403, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// getActor returns the actor stored by AuthMiddleware, nil on public routes.
func getActor(c *gin.Context) *service.Actor {
	actor, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	return actor.(*service.Actor)
}

func parseId(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}

func (p PageCache) flush(logger *zap.Logger) {
	if p.Store == nil {
		return
	}
	if err := p.Store.Flush(); err != nil {
		logger.Warn("could not flush page cache", zap.Error(err))
	}
}
