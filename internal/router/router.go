package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkim/storehub-backend/config"
	"github.com/mkim/storehub-backend/internal/app/controller"
	"github.com/mkim/storehub-backend/internal/app/model"
	"github.com/mkim/storehub-backend/internal/middleware"
)

type Router struct {
	config          *config.Config
	authMiddleware  *middleware.AuthMiddleware
	authController  *controller.AuthController
	storeController *controller.StoreController
	itemController  *controller.ItemController
	tagController   *controller.TagController
}

func NewRouter(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authController *controller.AuthController,
	storeController *controller.StoreController,
	itemController *controller.ItemController,
	tagController *controller.TagController,
) *Router {
	return &Router{
		config:          cfg,
		authMiddleware:  authMiddleware,
		authController:  authController,
		storeController: storeController,
		itemController:  itemController,
		tagController:   tagController,
	}
}

// Setup wires the middleware chain and all routes.
func (r *Router) Setup() *gin.Engine {
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	admin := string(model.RoleAdmin)

	// Authentication
	engine.POST("/register", r.authController.Register)
	engine.POST("/login", r.authController.Login)
	engine.POST("/refresh", r.authMiddleware.AuthenticateRefresh(), r.authController.Refresh)
	engine.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
	engine.GET("/user/:id", r.authController.GetUser)
	engine.DELETE("/user/:id", r.authMiddleware.Authenticate(), r.authController.DeleteUser)

	// Stores
	engine.GET("/store", r.storeController.ListStores)
	engine.POST("/store", r.storeController.CreateStore)
	engine.GET("/store/:id", r.storeController.GetStore)
	engine.DELETE("/store/:id", r.storeController.DeleteStore)

	// Tags live under their store for listing and creation
	engine.GET("/store/:id/tag", r.tagController.ListStoreTags)
	engine.POST("/store/:id/tag", r.tagController.CreateTag)
	engine.GET("/tag/:id", r.tagController.GetTag)
	engine.DELETE("/tag/:id", r.tagController.DeleteTag)

	// Items: reads are public, mutations are admin-gated
	engine.GET("/item", r.itemController.ListItems)
	engine.GET("/item/:id", r.itemController.GetItem)
	engine.POST("/item",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireFresh(),
		r.authMiddleware.RequireRole(admin),
		r.itemController.CreateItem,
	)
	engine.PUT("/item/:id",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(admin),
		r.itemController.UpsertItem,
	)
	engine.DELETE("/item/:id",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(admin),
		r.itemController.DeleteItem,
	)
	engine.POST("/item/:id/tag/:tag_id",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(admin),
		r.itemController.LinkTag,
	)
	engine.DELETE("/item/:id/tag/:tag_id",
		r.authMiddleware.Authenticate(),
		r.authMiddleware.RequireRole(admin),
		r.itemController.UnlinkTag,
	)

	return engine
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, o := range allowedOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
