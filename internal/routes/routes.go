package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wecreatehub/site_backend/internal/config"
	"github.com/wecreatehub/site_backend/internal/controllers"
	"github.com/wecreatehub/site_backend/internal/middleware"
	"github.com/wecreatehub/site_backend/internal/store"
	"github.com/wecreatehub/site_backend/internal/ws"
)

func Register(r *gin.Engine, db *gorm.DB, cfg *config.Config, feed *ws.FeedHub, log *zap.Logger) {
	docs := store.NewDB(db, cfg.ConfigKey)

	// Public script endpoint used by the site and the console
	execCtrl := controllers.NewExecController(docs, db, feed, log)
	r.GET("/exec", execCtrl.Get)
	r.POST("/exec", execCtrl.Post)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	admin := r.Group("/api/v1/admin", middleware.AdminKey(cfg.AdminKey))
	{
		leadCtrl := &controllers.LeadAdminController{DB: db}
		admin.GET("/leads", leadCtrl.List)
		admin.GET("/leads/:id", leadCtrl.Get)
		admin.DELETE("/leads", leadCtrl.Clear)

		cfgCtrl := &controllers.ConfigAdminController{Store: docs}
		admin.GET("/config", cfgCtrl.Get)
		admin.GET("/config/feed", ws.FeedHandler(feed))
	}
}
